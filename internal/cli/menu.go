// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

// Package cli implements the interactive terminal menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/models"
	"github.com/tomtom215/recipehelper/internal/service"
)

// RecipeService is the part of the application service the menu drives.
type RecipeService interface {
	Search(ctx context.Context, ingredient string) []models.RecipeSummary
	SaveFavorite(ctx context.Context, id int64) (models.Favorite, error)
	ShoppingList(ctx context.Context) service.ShoppingListView
}

const banner = `
=================================
Recipe Helper
1. Search recipes by ingredient
2. Show favorites and shopping list
3. Quit
=================================`

// Menu reads commands from in and writes prompts and results to out.
type Menu struct {
	svc RecipeService
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu creates a menu.
func NewMenu(svc RecipeService, in io.Reader, out io.Writer) *Menu {
	return &Menu{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user quits, input ends or ctx is canceled. End of
// input is a normal exit.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.println(banner)
		choice, ok := m.prompt("Choose an option (1-3): ")
		if !ok {
			m.println("")
			return m.in.Err()
		}

		cmdCtx := logging.ContextWithNewCorrelationID(ctx)
		switch choice {
		case "1":
			if err := m.search(cmdCtx); err != nil {
				return err
			}
		case "2":
			m.showShoppingList(cmdCtx)
		case "3":
			m.println("Goodbye!")
			return nil
		default:
			m.println("Please choose 1, 2 or 3.")
		}
	}
}

// search runs one search and optionally saves a result. It returns an
// error only when reading input fails.
func (m *Menu) search(ctx context.Context) error {
	ingredient, ok := m.prompt("Enter an ingredient you have: ")
	if !ok {
		return m.in.Err()
	}
	if ingredient == "" {
		m.println("Please enter an ingredient.")
		return nil
	}

	results := m.svc.Search(ctx, ingredient)
	if len(results) == 0 {
		m.println("No recipes found for that ingredient.")
		return nil
	}

	m.println("\n=== Search results ===")
	for i, r := range results {
		m.printf("%d. %s (ID: %d)\n", i+1, r.Title, r.ID)
	}
	m.println("======================")

	choice, ok := m.prompt("Save one as a favorite? (enter its number, 'n' to skip): ")
	if !ok {
		return m.in.Err()
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 0 {
		// Anything that is not a number, "n" included, skips.
		return nil
	}
	if n < 1 || n > len(results) {
		m.println("Invalid number.")
		return nil
	}

	picked := results[n-1]
	fav, err := m.svc.SaveFavorite(ctx, picked.ID)
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		m.println("Could not fetch the recipe details.")
	case err != nil:
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", picked.ID).Msg("Saving favorite failed")
		m.println("Could not save the favorite.")
	default:
		m.printf("Saved %q to favorites.\n", fav.Title)
	}
	return nil
}

func (m *Menu) showShoppingList(ctx context.Context) {
	view := m.svc.ShoppingList(ctx)
	if len(view.Favorites) == 0 {
		m.println("No favorite recipes yet, so the shopping list is empty.")
		return
	}

	m.println("\n=== Favorites ===")
	for _, f := range view.Favorites {
		m.printf("- %s (ID: %d)\n", f.Title, f.ID)
	}

	m.println("\n=== Shopping list ===")
	for _, e := range view.Entries {
		if e.Count > 1 {
			m.printf("• %s (x%d)\n", e.Display, e.Count)
			continue
		}
		m.printf("• %s\n", e.Display)
	}
	m.println("=====================")
}

// prompt writes label and reads one trimmed line. ok is false at end of
// input or on a read error.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) println(s string) {
	m.printf("%s\n", s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(m.out, format, args...); err != nil {
		logging.Debug().Err(err).Msg("Menu output failed")
	}
}
