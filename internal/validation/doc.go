// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is created with WithRequiredStructEnabled,
// reports JSON field names and adds a notblank tag. Failures come back as
// *RequestValidationError, which converts to the API's VALIDATION_ERROR body:
//
//	req := validation.SearchRequest{Ingredient: r.URL.Query().Get("ingredient")}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Path ids go through ParseRecipeID, which rejects non-integers and
// non-positive values.
package validation
