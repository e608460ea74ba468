// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package spoonacular

import (
	"context"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/models"
)

// API is the error-returning lookup surface.
type API interface {
	FindByIngredient(ctx context.Context, ingredient string) ([]models.RecipeSummary, error)
	Information(ctx context.Context, id int64) (models.RecipeDetails, error)
	Ping(ctx context.Context) error
}

// Finder is the lookup surface consumed by the application. Lookups never
// fail: errors are logged and reported as an empty result.
type Finder interface {
	SearchByIngredient(ctx context.Context, ingredient string) []models.RecipeSummary
	RecipeDetails(ctx context.Context, id int64) models.RecipeDetails
	Ping(ctx context.Context) error
}

// searchOrEmpty runs a search and maps any error to an empty slice.
func searchOrEmpty(ctx context.Context, api API, ingredient string) []models.RecipeSummary {
	results, err := api.FindByIngredient(ctx, ingredient)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("ingredient", ingredient).Msg("Recipe search failed")
		return []models.RecipeSummary{}
	}
	return results
}

// detailsOrEmpty fetches details and maps any error to the zero value.
func detailsOrEmpty(ctx context.Context, api API, id int64) models.RecipeDetails {
	details, err := api.Information(ctx, id)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Recipe details lookup failed")
		return models.RecipeDetails{}
	}
	return details
}
