// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package cache provides the BadgerDB-backed recipe details cache.
//
// Spoonacular's free tier allows a small number of requests per day and
// saving a favorite re-fetches the recipe details the user just viewed.
// Caching those details with a TTL keeps repeated views off the network.
//
//	c, err := cache.Open(&cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	details, err := c.Get(ctx, 716429)
//	if errors.Is(err, cache.ErrCacheMiss) {
//	    // fetch and c.Set(ctx, details)
//	}
//
// Values are stored as JSON under "recipe:details:<id>" and expire through
// Badger's native TTL.
package cache
