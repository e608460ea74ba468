// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/tomtom215/recipehelper/internal/middleware"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	GoVersion         string  `json:"go_version"`
	DatabaseConnected bool    `json:"database_connected"`
	SchemaVersion     int     `json:"schema_version,omitempty"`
	RecipeAPIBreaker  string  `json:"recipe_api_breaker,omitempty"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health reports overall status. The recipe API itself is not called;
// its circuit breaker state stands in for it so probes do not spend quota.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.service.Ping(r.Context()) == nil

	status := "healthy"
	if !dbConnected || h.breakerOpen() {
		status = "degraded"
	}

	health := HealthStatus{
		Status:            status,
		Version:           h.version,
		GoVersion:         runtime.Version(),
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if dbConnected {
		if version, err := h.service.SchemaVersion(r.Context()); err == nil {
			health.SchemaVersion = version
		}
	}
	if h.breakerState != nil {
		health.RecipeAPIBreaker = h.breakerState()
	}

	NewResponseWriter(w, r).Success(health)
}

// HealthLive returns 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 when the favorite store answers and 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.service.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	if !dbConnected {
		statusCode = http.StatusServiceUnavailable
	}

	NewResponseWriter(w, r).Status(statusCode, dbConnected, map[string]interface{}{
		"database_connected": dbConnected,
		"ready_to_serve":     dbConnected,
		"uptime":             time.Since(h.startTime).Seconds(),
	})
}

// Performance handles GET /api/v1/performance.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	stats := []middleware.RouteStats{}
	if h.perfMon != nil {
		stats = h.perfMon.Stats()
	}
	NewResponseWriter(w, r).List(stats, len(stats))
}
