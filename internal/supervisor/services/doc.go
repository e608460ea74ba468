// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package services adapts recipe server components to suture.Service.
//
// HTTPServerService binds the listener and drains the chi router on
// shutdown. CacheGCService runs Badger value log GC on a ticker. The
// favorite event consumer already implements suture.Service and is added
// to the tree directly.
package services
