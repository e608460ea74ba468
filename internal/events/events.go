// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package events carries favorite saved/deleted notifications over an
// in-process Watermill GoChannel pub/sub.
//
// The service layer publishes after every successful store change; a
// supervised Consumer keeps derived state (the favorites gauge) current
// without the request path having to do it.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics
const (
	TopicFavoriteSaved   = "favorite.saved"
	TopicFavoriteDeleted = "favorite.deleted"
)

// FavoriteEvent is the payload of both favorite topics.
type FavoriteEvent struct {
	EventID         string    `json:"event_id"`
	RecipeID        int64     `json:"recipe_id"`
	Title           string    `json:"title,omitempty"`
	IngredientCount int       `json:"ingredient_count"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// NewFavoriteEvent creates an event with a fresh ID and the current time.
func NewFavoriteEvent(recipeID int64, title string, ingredientCount int) FavoriteEvent {
	return FavoriteEvent{
		EventID:         uuid.NewString(),
		RecipeID:        recipeID,
		Title:           title,
		IngredientCount: ingredientCount,
		OccurredAt:      time.Now().UTC(),
	}
}

// Validate checks required fields.
func (e *FavoriteEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if e.RecipeID <= 0 {
		return fmt.Errorf("recipe_id must be positive, got %d", e.RecipeID)
	}
	return nil
}

// Marshal validates and encodes the event.
func (e *FavoriteEvent) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalFavoriteEvent decodes an event payload.
func UnmarshalFavoriteEvent(data []byte) (FavoriteEvent, error) {
	var e FavoriteEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return FavoriteEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}
