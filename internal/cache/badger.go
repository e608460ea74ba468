// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/models"
)

const detailsKeyPrefix = "recipe:details:"

var (
	// ErrCacheMiss is returned when no unexpired entry exists for a key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheClosed is returned by operations on a closed cache.
	ErrCacheClosed = errors.New("cache is closed")
)

// DetailsCache stores recipe details by recipe id.
type DetailsCache interface {
	Get(ctx context.Context, id int64) (models.RecipeDetails, error)
	Set(ctx context.Context, details models.RecipeDetails) error
}

// BadgerCache implements DetailsCache on BadgerDB with a fixed TTL.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the cache described by cfg.
func Open(cfg *config.CacheConfig) (*BadgerCache, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = newBadgerLogger()

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Dur("ttl", cfg.TTL).
		Msg("Recipe details cache opened")

	return &BadgerCache{db: db, ttl: cfg.TTL}, nil
}

func detailsKey(id int64) []byte {
	return []byte(detailsKeyPrefix + strconv.FormatInt(id, 10))
}

// Get returns the cached details for id or ErrCacheMiss.
func (c *BadgerCache) Get(_ context.Context, id int64) (models.RecipeDetails, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return models.RecipeDetails{}, ErrCacheClosed
	}

	var details models.RecipeDetails
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(detailsKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCacheMiss
		}
		if err != nil {
			return fmt.Errorf("get details: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &details)
		})
	})
	if err != nil {
		return models.RecipeDetails{}, err
	}
	return details, nil
}

// Set stores details under their recipe id, replacing any previous entry.
func (c *BadgerCache) Set(_ context.Context, details models.RecipeDetails) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrCacheClosed
	}

	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(detailsKey(details.ID), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes the entry for id. Deleting a missing key is not an error.
func (c *BadgerCache) Delete(_ context.Context, id int64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrCacheClosed
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(detailsKey(id))
	})
}

// RunGC reclaims value log space. It is a no-op for in-memory caches and
// when there is nothing to rewrite.
func (c *BadgerCache) RunGC() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrCacheClosed
	}

	for {
		err := c.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close flushes and closes the underlying database. Further calls are no-ops.
func (c *BadgerCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}

var _ DetailsCache = (*BadgerCache)(nil)
