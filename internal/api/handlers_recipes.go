// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recipehelper/internal/validation"
)

// SearchRecipes handles GET /api/v1/recipes/search?ingredient=.
// A failed lookup yields an empty list, never an error.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := validation.SearchRequest{Ingredient: r.URL.Query().Get("ingredient")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	results := h.service.Search(r.Context(), req.Ingredient)
	rw.List(results, len(results))
}

// GetRecipe handles GET /api/v1/recipes/{id}.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := recipeIDParam(rw, r)
	if !ok {
		return
	}

	view, found := h.service.Recipe(r.Context(), id)
	if !found {
		if h.breakerOpen() {
			rw.ExternalServiceError("spoonacular")
			return
		}
		rw.NotFound("Recipe not found")
		return
	}
	rw.Success(view)
}

// recipeIDParam parses and validates the {id} path parameter, writing a
// validation error response when it is not a positive integer.
func recipeIDParam(rw *ResponseWriter, r *http.Request) (int64, bool) {
	id, verr := validation.ParseRecipeID(chi.URLParam(r, "id"))
	if verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return 0, false
	}
	return id, true
}
