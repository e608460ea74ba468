// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package service composes recipe lookup, the favorite store and the
// favorite event bus into the operations shared by the HTTP API and the
// interactive menu.
//
// Dependencies are injected through NewRecipeService. Every store access
// runs inside database.DB.WithSession, so a store handle is held only for
// the duration of one operation.
package service
