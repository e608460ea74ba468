// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package api

import (
	"context"
	"time"

	"github.com/tomtom215/recipehelper/internal/middleware"
	"github.com/tomtom215/recipehelper/internal/models"
	"github.com/tomtom215/recipehelper/internal/service"
)

// RecipeService is the application service the handlers call.
// *service.RecipeService implements it.
type RecipeService interface {
	Search(ctx context.Context, ingredient string) []models.RecipeSummary
	Recipe(ctx context.Context, id int64) (service.RecipeView, bool)
	SaveFavorite(ctx context.Context, id int64) (models.Favorite, error)
	DeleteFavorite(ctx context.Context, id int64) bool
	Favorites(ctx context.Context) []models.Favorite
	ShoppingList(ctx context.Context) service.ShoppingListView
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
}

// HandlerConfig holds the optional collaborators of Handler.
type HandlerConfig struct {
	// Version is reported by /health.
	Version string

	// BreakerState reports the recipe API circuit breaker state
	// ("closed", "half-open", "open"). Nil means no breaker.
	BreakerState func() string

	// PerfMon backs /api/v1/performance. Nil disables the endpoint data.
	PerfMon *middleware.PerformanceMonitor
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recipes.go: search and details
//   - handlers_favorites.go: favorites and grocery list
//   - handlers_health.go: health, readiness and performance
type Handler struct {
	service      RecipeService
	version      string
	breakerState func() string
	perfMon      *middleware.PerformanceMonitor
	startTime    time.Time
}

// NewHandler creates a new API handler.
func NewHandler(svc RecipeService, cfg HandlerConfig) *Handler {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		service:      svc,
		version:      version,
		breakerState: cfg.BreakerState,
		perfMon:      cfg.PerfMon,
		startTime:    time.Now(),
	}
}

// breakerOpen reports whether the recipe API is currently short-circuited.
func (h *Handler) breakerOpen() bool {
	return h.breakerState != nil && h.breakerState() == "open"
}
