// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
	"github.com/tomtom215/recipehelper/internal/shopping"
)

const favoritesTable = "favorites"

// SaveFavorite stores a favorite, replacing any existing row with the same id.
// Returns false if the ingredients cannot be encoded or the write fails.
func (s *Session) SaveFavorite(ctx context.Context, id int64, title string, ingredients []string) bool {
	encoded, err := shopping.EncodeIngredients(ingredients)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Failed to encode favorite ingredients")
		return false
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO favorites (id, title, ingredients_json) VALUES (?, ?, ?)`,
		id, title, encoded)
	metrics.RecordDBQuery("UPSERT", favoritesTable, time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Failed to save favorite")
		return false
	}

	logging.Ctx(ctx).Debug().Int64("recipe_id", id).Int("ingredients", len(ingredients)).Msg("Favorite saved")
	return true
}

// GetFavorites returns every stored favorite ordered by id. The ingredient
// list of each record is still JSON encoded. Errors yield an empty slice.
func (s *Session) GetFavorites(ctx context.Context) []models.FavoriteRecord {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	records, err := s.queryFavorites(ctx)
	metrics.RecordDBQuery("SELECT", favoritesTable, time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load favorites")
		return []models.FavoriteRecord{}
	}
	return records
}

func (s *Session) queryFavorites(ctx context.Context) ([]models.FavoriteRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(ingredients_json, '[]') FROM favorites ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	records := []models.FavoriteRecord{}
	for rows.Next() {
		var rec models.FavoriteRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.IngredientsJSON); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetFavorite looks up a single favorite and decodes its ingredients.
// The boolean is false when the id is not stored or the lookup fails.
func (s *Session) GetFavorite(ctx context.Context, id int64) (models.Favorite, bool) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var rec models.FavoriteRecord
	start := time.Now()
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(ingredients_json, '[]') FROM favorites WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Title, &rec.IngredientsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("SELECT", favoritesTable, time.Since(start), nil)
		return models.Favorite{}, false
	}
	metrics.RecordDBQuery("SELECT", favoritesTable, time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Failed to load favorite")
		return models.Favorite{}, false
	}

	ingredients, err := shopping.DecodeIngredients(rec.IngredientsJSON)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Favorite has malformed ingredients")
		ingredients = []string{}
	}
	return models.Favorite{ID: rec.ID, Title: rec.Title, Ingredients: ingredients}, true
}

// DeleteFavorite removes a favorite. It returns true only when a row was
// removed; a missing id or a failed delete returns false.
func (s *Session) DeleteFavorite(ctx context.Context, id int64) bool {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	result, err := s.conn.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	metrics.RecordDBQuery("DELETE", favoritesTable, time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Failed to delete favorite")
		return false
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Failed to read delete result")
		return false
	}
	return affected > 0
}

// CountFavorites returns the number of stored favorites, or 0 on error.
func (s *Session) CountFavorites(ctx context.Context) int {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var count int
	start := time.Now()
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&count)
	metrics.RecordDBQuery("COUNT", favoritesTable, time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to count favorites")
		return 0
	}
	return count
}
