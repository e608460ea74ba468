// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/tomtom215/recipehelper/internal/metrics"
)

// Session is a store handle bound to one dedicated connection.
// It is not safe for concurrent use; acquire one per unit of work.
type Session struct {
	conn *sql.Conn

	once     sync.Once
	closeErr error
}

// Acquire takes a dedicated connection from the pool. The caller must
// Close the returned session; prefer WithSession.
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	if db.conn == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store session: %w", err)
	}
	metrics.DBSessionsActive.Inc()
	return &Session{conn: conn}, nil
}

// Close returns the connection to the pool. Calling Close more than once
// is a no-op that returns the first result.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.closeErr = s.conn.Close()
		metrics.DBSessionsActive.Dec()
	})
	return s.closeErr
}

// WithSession acquires a session, runs fn and releases the session on
// every exit path, including a panic in fn.
func (db *DB) WithSession(ctx context.Context, fn func(*Session) error) error {
	s, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer closeWithLog(s, "store session")
	return fn(s)
}
