// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package services

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/recipehelper/internal/cache"
	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
)

// DefaultCacheGCInterval is used when no interval is configured.
const DefaultCacheGCInterval = 10 * time.Minute

// GarbageCollector is satisfied by *cache.BadgerCache.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService periodically reclaims value log space in the recipe
// details cache.
type CacheGCService struct {
	cache    GarbageCollector
	interval time.Duration
}

// NewCacheGCService creates the service.
func NewCacheGCService(c GarbageCollector, interval time.Duration) *CacheGCService {
	if interval <= 0 {
		interval = DefaultCacheGCInterval
	}
	return &CacheGCService{cache: c, interval: interval}
}

// Serve implements suture.Service. A GC failure is logged and retried on the
// next tick; a closed cache stops the service for good.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runOnce(); err != nil {
				return err
			}
		}
	}
}

func (s *CacheGCService) runOnce() error {
	err := s.cache.RunGC()
	switch {
	case err == nil:
		metrics.CacheGCRuns.WithLabelValues("ok").Inc()
		logging.Debug().Msg("Cache GC pass complete")
		return nil
	case errors.Is(err, cache.ErrCacheClosed):
		metrics.CacheGCRuns.WithLabelValues("closed").Inc()
		logging.Info().Msg("Cache closed, stopping GC")
		return suture.ErrDoNotRestart
	default:
		metrics.CacheGCRuns.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Msg("Cache GC failed")
		return nil
	}
}

// String identifies the service in supervisor events.
func (s *CacheGCService) String() string {
	return "cache-gc"
}
