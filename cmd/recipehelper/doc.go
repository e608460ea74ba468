// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Command recipehelper finds recipes by ingredient through the Spoonacular
// API, keeps favorites in DuckDB and builds a merged shopping list from them.
//
// # Modes
//
//	recipehelper            # same as "serve"
//	recipehelper serve      # JSON API on HTTP_HOST:HTTP_PORT
//	recipehelper menu       # interactive terminal menu
//	recipehelper -version
//
// Both modes share the same wiring:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Favorites store: DuckDB at DUCKDB_PATH
//  3. Recipe API: rate-limited client behind a circuit breaker
//  4. Details cache: BadgerDB in front of the recipe API (CACHE_ENABLED)
//  5. Event bus: in-process Watermill channel for favorite events
//
// In serve mode a suture tree runs the HTTP server, the favorite event
// consumer and the cache GC loop.
//
// # Configuration
//
// The only required setting is the API key:
//
//	export SPOONACULAR_API_KEY=your-key
//	./recipehelper menu
//
// Common overrides:
//
//	export HTTP_PORT=8080
//	export DUCKDB_PATH=/var/lib/recipehelper/recipes.duckdb
//	export CACHE_PATH=/var/cache/recipehelper
//	export LOG_FORMAT=console
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree, drain in-flight requests for
// up to HTTP_SHUTDOWN_TIMEOUT, checkpoint DuckDB and close the cache.
package main
