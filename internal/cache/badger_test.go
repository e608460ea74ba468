// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/models"
)

func setupTestCache(t *testing.T, ttl time.Duration) *BadgerCache {
	t.Helper()

	c, err := Open(&config.CacheConfig{Enabled: true, InMemory: true, TTL: ttl})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return c
}

func TestBadgerCache_SetGet(t *testing.T) {
	t.Parallel()
	c := setupTestCache(t, time.Hour)
	ctx := context.Background()

	want := models.RecipeDetails{
		ID:          716429,
		Title:       "Pasta with Garlic",
		Ingredients: []string{"1 lb pasta", "2 cloves garlic"},
	}
	if err := c.Set(ctx, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestBadgerCache_Miss(t *testing.T) {
	t.Parallel()
	c := setupTestCache(t, time.Hour)

	_, err := c.Get(context.Background(), 1)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestBadgerCache_Expiry(t *testing.T) {
	t.Parallel()
	// Badger TTLs have one-second resolution.
	c := setupTestCache(t, time.Second)
	ctx := context.Background()

	if err := c.Set(ctx, models.RecipeDetails{ID: 2, Title: "Short Lived"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(2100 * time.Millisecond)

	if _, err := c.Get(ctx, 2); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after TTL error = %v, want ErrCacheMiss", err)
	}
}

func TestBadgerCache_Delete(t *testing.T) {
	t.Parallel()
	c := setupTestCache(t, time.Hour)
	ctx := context.Background()

	_ = c.Set(ctx, models.RecipeDetails{ID: 3, Title: "Soup"})
	if err := c.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, 3); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after Delete error = %v, want ErrCacheMiss", err)
	}
	if err := c.Delete(ctx, 3); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestBadgerCache_RunGCInMemory(t *testing.T) {
	t.Parallel()
	c := setupTestCache(t, time.Hour)

	if err := c.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestBadgerCache_Closed(t *testing.T) {
	t.Parallel()

	c, err := Open(&config.CacheConfig{InMemory: true, TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get() error = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, models.RecipeDetails{ID: 1}); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set() error = %v, want ErrCacheClosed", err)
	}
}

func TestBadgerCache_Persistent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	c, err := Open(&config.CacheConfig{Path: dir, TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_ = c.Set(ctx, models.RecipeDetails{ID: 9, Title: "Stew", Ingredients: []string{"beef"}})
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(&config.CacheConfig{Path: dir, TTL: time.Hour})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, 9)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Title != "Stew" {
		t.Errorf("Title = %q, want Stew", got.Title)
	}
}
