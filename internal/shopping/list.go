// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package shopping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/models"
)

// List maps a canonical ingredient name to the number of favorite
// ingredient lines that normalized to it. Iteration order is undefined;
// use Entries for display.
type List map[string]int

// Entry is one display-ready shopping list row.
type Entry struct {
	Name    string `json:"name"`    // Canonical key, unchanged
	Display string `json:"display"` // Title-cased for display only
	Count   int    `json:"count"`
}

// BuildList aggregates the ingredients of every favorite. An empty input
// yields an empty, non-nil list.
func BuildList(favorites []models.Favorite) List {
	list := make(List)
	for _, fav := range favorites {
		for _, raw := range fav.Ingredients {
			list.Add(raw)
		}
	}
	return list
}

// BuildListFromRecords aggregates favorites as returned by the store.
// A record whose ingredients_json cannot be decoded is skipped and
// reported in the returned error; the remaining records are still counted.
func BuildListFromRecords(records []models.FavoriteRecord) (List, error) {
	list := make(List)
	var errs []error

	for _, rec := range records {
		ingredients, err := DecodeIngredients(rec.IngredientsJSON)
		if err != nil {
			logging.Warn().Err(err).Int64("recipe_id", rec.ID).Msg("Skipping favorite with malformed ingredients")
			errs = append(errs, fmt.Errorf("favorite %d: %w", rec.ID, err))
			continue
		}
		for _, raw := range ingredients {
			list.Add(raw)
		}
	}

	return list, errors.Join(errs...)
}

// Add normalizes one raw ingredient line and counts it.
// Lines that normalize to the empty string are ignored.
func (l List) Add(raw string) {
	if key := Normalize(raw); key != "" {
		l[key]++
	}
}

// Entries returns the list sorted by canonical key (byte-wise ascending)
// with a title-cased display name for each key.
func (l List) Entries() []Entry {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Name: k, Display: DisplayName(k), Count: l[k]})
	}
	return entries
}

// DisplayName title-cases a canonical key ("tomato sauce" -> "Tomato Sauce").
// The key itself is never modified.
func DisplayName(key string) string {
	// cases.Caser is stateful and must not be shared between goroutines.
	return cases.Title(language.Und).String(key)
}

// EncodeIngredients renders an ingredient list in the stored JSON form.
// A nil slice is stored as an empty array.
func EncodeIngredients(ingredients []string) (string, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	b, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("encode ingredients: %w", err)
	}
	return string(b), nil
}

// DecodeIngredients parses the stored JSON form of an ingredient list.
func DecodeIngredients(encoded string) ([]string, error) {
	var ingredients []string
	if err := json.Unmarshal([]byte(encoded), &ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return ingredients, nil
}
