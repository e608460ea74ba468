// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package database provides the DuckDB-backed favorites store.

DB owns the connection pool. Callers never query it directly: every
operation runs on a Session, a dedicated connection acquired for the
duration of one HTTP request or one menu command and released when that
unit of work ends.

	err := db.WithSession(ctx, func(s *database.Session) error {
	    if !s.SaveFavorite(ctx, 716429, "Pasta with Garlic", ingredients) {
	        return errSaveFailed
	    }
	    return nil
	})

WithSession releases the session on every exit path, including a panic
inside the callback.

# Schema

	CREATE TABLE favorites (
	    id BIGINT PRIMARY KEY,
	    title TEXT,
	    ingredients_json TEXT
	)

ingredients_json holds the ingredient lines as a JSON array of strings.
Saving an existing id replaces the row.

# Error Handling

Store operations do not return errors. Failures are logged, recorded in
the duckdb_query_errors_total metric and reported as false, an empty
slice or zero. Construction (New) and session acquisition return wrapped
errors.
*/
package database
