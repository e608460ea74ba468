// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package api provides the HTTP REST API layer for Recipe Helper.

Endpoints:

	GET    /api/v1/recipes/search?ingredient=  ingredient search
	GET    /api/v1/recipes/{id}                recipe details and favorite flag
	GET    /api/v1/favorites                   saved favorites
	POST   /api/v1/favorites/{id}              save a recipe as favorite
	DELETE /api/v1/favorites/{id}              remove a favorite
	GET    /api/v1/grocery                     favorites plus merged shopping list
	GET    /api/v1/performance                 per-route latency statistics
	GET    /health, /health/live, /health/ready
	GET    /metrics                            Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"timestamp": "...", "request_id": "...", "count": 3}
	}

Errors carry a machine-readable code (NOT_FOUND, VALIDATION_ERROR,
DATABASE_ERROR, EXTERNAL_SERVICE_ERROR, TOO_MANY_REQUESTS) and the request
ID for tracing.

Usage Example:

	handler := api.NewHandler(recipeService, api.HandlerConfig{Version: version})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}

Thread Safety:

All handlers are safe for concurrent use. Each request that touches the
favorite store holds its own store session for the duration of the call.
*/
package api
