// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package database

import (
	"io"

	"github.com/tomtom215/recipehelper/internal/logging"
)

// closeWithLog closes rows, sessions and similar handles on a deferred
// path, logging a failed Close instead of returning it.
func closeWithLog(closer io.Closer, resource string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("resource", resource).Err(err).Msg("Failed to close store resource")
	}
}

// closeQuietly is for error paths that already carry the real error.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
