// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package validation

// SearchRequest is the ingredient search query.
type SearchRequest struct {
	Ingredient string `json:"ingredient" validate:"required,notblank,max=200"`
}

// RecipeIDParam is a Spoonacular recipe id taken from the URL path.
type RecipeIDParam struct {
	ID int64 `json:"id" validate:"gt=0"`
}
