// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package spoonacular

import (
	"context"
	"errors"

	"github.com/tomtom215/recipehelper/internal/cache"
	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
)

const detailsCacheName = "recipe_details"

// CachedFinder serves recipe details from a cache before asking the
// wrapped Finder. Searches are always passed through. Empty details are
// never cached so a transient failure is retried on the next lookup.
type CachedFinder struct {
	finder Finder
	cache  cache.DetailsCache
}

// NewCachedFinder wraps finder with c.
func NewCachedFinder(finder Finder, c cache.DetailsCache) *CachedFinder {
	return &CachedFinder{finder: finder, cache: c}
}

// SearchByIngredient delegates to the wrapped Finder.
func (f *CachedFinder) SearchByIngredient(ctx context.Context, ingredient string) []models.RecipeSummary {
	return f.finder.SearchByIngredient(ctx, ingredient)
}

// RecipeDetails returns cached details when present, otherwise fetches
// and caches them.
func (f *CachedFinder) RecipeDetails(ctx context.Context, id int64) models.RecipeDetails {
	details, err := f.cache.Get(ctx, id)
	if err == nil {
		metrics.RecordCacheLookup(detailsCacheName, true)
		return details
	}
	metrics.RecordCacheLookup(detailsCacheName, false)
	if !errors.Is(err, cache.ErrCacheMiss) {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Recipe details cache read failed")
	}

	details = f.finder.RecipeDetails(ctx, id)
	if details.IsEmpty() {
		return details
	}

	if err := f.cache.Set(ctx, details); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Recipe details cache write failed")
	}
	return details
}

// Ping delegates to the wrapped Finder.
func (f *CachedFinder) Ping(ctx context.Context) error {
	return f.finder.Ping(ctx)
}

var _ Finder = (*CachedFinder)(nil)
