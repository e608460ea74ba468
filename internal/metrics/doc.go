// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rejected by the per-IP limiter (counter)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
  - duckdb_sessions_active: Acquired store sessions (gauge)

Spoonacular Metrics:
  - spoonacular_requests_total: Outbound requests (counter)
    Labels: endpoint, status
  - spoonacular_request_duration_seconds: Outbound latency (histogram)
  - spoonacular_retries_total: Retries after HTTP 429 (counter)

Cache and Circuit Breaker Metrics:
  - cache_hits_total, cache_misses_total: Labels: cache
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Domain Metrics:
  - favorites_total: Saved favorites (gauge)
  - shopping_list_entries: Entries in the last built list (gauge)
  - favorite_events_published_total, favorite_events_consumed_total: Labels: topic

# Usage

	start := time.Now()
	_, err := conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("INSERT", "favorites", time.Since(start), err)
*/
package metrics
