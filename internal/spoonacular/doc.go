// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package spoonacular is the client for the Spoonacular recipe API.

Two endpoints are used:

	GET {base}findByIngredients?ingredients=X&number=N&apiKey=K
	GET {base}{id}/information?includeNutrition=false&apiKey=K

# Layers

Client talks HTTP. Its FindByIngredient and Information methods return
errors; SearchByIngredient and RecipeDetails log any failure and return an
empty result instead, which is what the rest of the application consumes
through the Finder interface.

CircuitBreakerClient wraps any API with sony/gobreaker so that a failing
upstream is not hammered. CachedFinder wraps any Finder with a
cache.DetailsCache.

	client := spoonacular.NewClient(&cfg.Spoonacular)
	breaker := spoonacular.NewCircuitBreakerClient(client, spoonacular.DefaultBreakerConfig())
	finder := spoonacular.NewCachedFinder(breaker, detailsCache)

# Resilience

  - Outbound token bucket (golang.org/x/time/rate) shared by all requests
  - HTTP 429: exponential backoff (1s, 2s, 4s, ...) honoring Retry-After
  - Circuit breaker opens at a 60% failure rate over at least 10 requests
  - 4xx responses other than 429 do not count against the breaker

The API key travels as a query parameter and is redacted from every error
and log line.
*/
package spoonacular
