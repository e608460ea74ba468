// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/recipehelper/internal/service"
)

// ListFavorites handles GET /api/v1/favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := h.service.Favorites(r.Context())
	NewResponseWriter(w, r).List(favorites, len(favorites))
}

// SaveFavorite handles POST /api/v1/favorites/{id}. The recipe details are
// fetched again so the stored copy is current.
func (h *Handler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := recipeIDParam(rw, r)
	if !ok {
		return
	}

	fav, err := h.service.SaveFavorite(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		if h.breakerOpen() {
			rw.ExternalServiceError("spoonacular")
			return
		}
		rw.NotFound("Recipe not found")
	case errors.Is(err, service.ErrStoreFailed):
		rw.DatabaseError(err)
	case err != nil:
		rw.InternalError("Failed to save favorite")
	default:
		rw.Created(fav)
	}
}

// DeleteFavorite handles DELETE /api/v1/favorites/{id}.
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := recipeIDParam(rw, r)
	if !ok {
		return
	}

	if !h.service.DeleteFavorite(r.Context(), id) {
		rw.NotFound("Favorite not found")
		return
	}
	rw.NoContent()
}

// GroceryList handles GET /api/v1/grocery: every favorite plus the merged
// shopping list sorted by ingredient name.
func (h *Handler) GroceryList(w http.ResponseWriter, r *http.Request) {
	view := h.service.ShoppingList(r.Context())
	NewResponseWriter(w, r).List(view, len(view.Entries))
}
