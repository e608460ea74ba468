// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package shopping turns the raw ingredient lines of saved favorites into a
// merged shopping list.
//
// Ingredient lines coming from the recipe API look like "1 cup of milk" or
// "2 tablespoons olive oil". Normalize reduces them to a canonical key
// ("milk", "olive oil") and BuildList counts how many ingredient lines
// collapsed onto each key.
package shopping

import (
	"regexp"
	"strings"
)

var (
	// quantityPattern matches an integer, decimal or simple fraction ("1/2").
	// Only the first match is removed.
	quantityPattern = regexp.MustCompile(`(\d+\s*[/|.]*\d*|\d)`)

	// unitPattern matches common unit words, optionally pluralized.
	unitPattern = regexp.MustCompile(`(?i)\b(cup|teaspoon|tablespoon|tsp|tbsp|oz|g|kg|ml|l|pound|lb)s?\b`)

	// fillers are connector words and commas. "of" and "and" are
	// removed as plain substrings, so "andouille" becomes "ouille".
	fillers = []string{"of", "and", ","}
)

// Normalize reduces a raw ingredient line to its canonical shopping-list key.
// It never fails; an empty result means the line contributes nothing.
//
//	Normalize("1 cup of milk") // "milk"
//	Normalize("garlic")        // "garlic"
func Normalize(raw string) string {
	s := raw
	if loc := quantityPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	s = strings.TrimSpace(s)

	s = strings.TrimSpace(unitPattern.ReplaceAllString(s, ""))

	s = strings.ToLower(s)
	for _, filler := range fillers {
		s = strings.ReplaceAll(s, filler, "")
	}
	return strings.TrimSpace(s)
}
