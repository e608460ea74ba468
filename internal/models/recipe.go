// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package models holds the data types shared by the store, the recipe
// lookup client and the API.
package models

// RecipeSummary is one hit from an ingredient search.
type RecipeSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// RecipeDetails is the title and raw ingredient lines of one recipe.
// The zero value means "no data" (lookup failed or recipe unknown).
type RecipeDetails struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
}

// IsEmpty reports whether the lookup produced nothing usable.
func (d RecipeDetails) IsEmpty() bool {
	return d.Title == ""
}

// Favorite is a saved recipe. There is at most one favorite per ID;
// saving again overwrites the title and ingredients.
type Favorite struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
}

// FavoriteRecord is a favorite exactly as stored: the ingredient list is
// still the JSON-encoded array of strings.
type FavoriteRecord struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	IngredientsJSON string `json:"ingredients_json"`
}
