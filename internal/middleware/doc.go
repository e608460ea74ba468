// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: UUID-based request tracking, echoed in X-Request-ID and
    carried in the logging context
  - Request Logger: one structured log line per request
  - Prometheus Metrics: request count, latency and in-flight gauge
  - Performance Monitor: sliding window of recent latencies with
    per-route percentiles

All middleware has the func(http.Handler) http.Handler shape used by chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Metrics and the performance monitor label requests with the chi route
pattern ("/api/v1/favorites/{id}") rather than the raw path, so recipe ids
do not create one series per id. Requests that matched no route are
labeled "unmatched".
*/
package middleware
