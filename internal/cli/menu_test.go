// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/recipehelper/internal/models"
	"github.com/tomtom215/recipehelper/internal/service"
	"github.com/tomtom215/recipehelper/internal/shopping"
)

type stubService struct {
	results   []models.RecipeSummary
	details   map[int64]models.RecipeDetails
	saveErr   error
	favorites []models.Favorite
	searched  []string
	saved     []int64
}

func (s *stubService) Search(_ context.Context, ingredient string) []models.RecipeSummary {
	s.searched = append(s.searched, ingredient)
	return s.results
}

func (s *stubService) SaveFavorite(_ context.Context, id int64) (models.Favorite, error) {
	s.saved = append(s.saved, id)
	if s.saveErr != nil {
		return models.Favorite{}, s.saveErr
	}
	d, ok := s.details[id]
	if !ok {
		return models.Favorite{}, service.ErrRecipeNotFound
	}
	fav := models.Favorite{ID: id, Title: d.Title, Ingredients: d.Ingredients}
	s.favorites = append(s.favorites, fav)
	return fav, nil
}

func (s *stubService) ShoppingList(context.Context) service.ShoppingListView {
	return service.ShoppingListView{
		Favorites: s.favorites,
		Entries:   shopping.BuildList(s.favorites).Entries(),
	}
}

func newStub() *stubService {
	return &stubService{
		results: []models.RecipeSummary{{ID: 11, Title: "Tomato Soup"}, {ID: 22, Title: "Bruschetta"}},
		details: map[int64]models.RecipeDetails{
			11: {ID: 11, Title: "Tomato Soup", Ingredients: []string{"4 tomatoes", "1 cup of milk", "garlic"}},
			22: {ID: 22, Title: "Bruschetta", Ingredients: []string{"2 tomatoes", "garlic", "bread"}},
		},
	}
}

func runMenu(t *testing.T, svc RecipeService, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := NewMenu(svc, strings.NewReader(input), &out).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestMenuQuit(t *testing.T) {
	out := runMenu(t, newStub(), "3\n")
	assert.Contains(t, out, "1. Search recipes by ingredient")
	assert.Contains(t, out, "Goodbye!")
}

func TestMenuEOFQuits(t *testing.T) {
	out := runMenu(t, newStub(), "")
	assert.Contains(t, out, "Choose an option (1-3)")
	assert.NotContains(t, out, "Goodbye!")
}

func TestMenuInvalidChoice(t *testing.T) {
	out := runMenu(t, newStub(), "9\nabc\n3\n")
	assert.Equal(t, 2, strings.Count(out, "Please choose 1, 2 or 3."))
}

func TestMenuSearchAndSave(t *testing.T) {
	svc := newStub()
	out := runMenu(t, svc, "1\n tomato \n2\n3\n")

	assert.Equal(t, []string{"tomato"}, svc.searched)
	assert.Contains(t, out, "1. Tomato Soup (ID: 11)")
	assert.Contains(t, out, "2. Bruschetta (ID: 22)")
	assert.Equal(t, []int64{22}, svc.saved)
	assert.Contains(t, out, `Saved "Bruschetta" to favorites.`)
}

func TestMenuSearchSkip(t *testing.T) {
	for _, answer := range []string{"n", "", "-1", "yes"} {
		t.Run("answer "+answer, func(t *testing.T) {
			svc := newStub()
			runMenu(t, svc, "1\ntomato\n"+answer+"\n3\n")
			assert.Empty(t, svc.saved)
		})
	}
}

func TestMenuSearchInvalidNumber(t *testing.T) {
	for _, answer := range []string{"0", "3", "99"} {
		t.Run("answer "+answer, func(t *testing.T) {
			svc := newStub()
			out := runMenu(t, svc, "1\ntomato\n"+answer+"\n3\n")
			assert.Contains(t, out, "Invalid number.")
			assert.Empty(t, svc.saved)
		})
	}
}

func TestMenuSearchEmptyIngredient(t *testing.T) {
	svc := newStub()
	out := runMenu(t, svc, "1\n   \n3\n")
	assert.Contains(t, out, "Please enter an ingredient.")
	assert.Empty(t, svc.searched)
}

func TestMenuSearchNoResults(t *testing.T) {
	svc := newStub()
	svc.results = []models.RecipeSummary{}
	out := runMenu(t, svc, "1\nunobtainium\n3\n")
	assert.Contains(t, out, "No recipes found for that ingredient.")
}

func TestMenuSaveFailures(t *testing.T) {
	tests := []struct {
		name    string
		saveErr error
		want    string
	}{
		{"details unavailable", service.ErrRecipeNotFound, "Could not fetch the recipe details."},
		{"store failure", service.ErrStoreFailed, "Could not save the favorite."},
		{"other failure", errors.New("boom"), "Could not save the favorite."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newStub()
			svc.saveErr = tt.saveErr
			out := runMenu(t, svc, "1\ntomato\n1\n3\n")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestMenuShoppingListEmpty(t *testing.T) {
	out := runMenu(t, newStub(), "2\n3\n")
	assert.Contains(t, out, "No favorite recipes yet, so the shopping list is empty.")
}

func TestMenuShoppingList(t *testing.T) {
	svc := newStub()
	out := runMenu(t, svc, "1\ntomato\n1\n1\ntomato\n2\n2\n3\n")

	assert.Contains(t, out, "- Tomato Soup (ID: 11)")
	assert.Contains(t, out, "- Bruschetta (ID: 22)")

	list := out[strings.Index(out, "=== Shopping list ==="):]
	bread := strings.Index(list, "• Bread\n")
	garlic := strings.Index(list, "• Garlic (x2)\n")
	milk := strings.Index(list, "• Milk\n")
	tomatoes := strings.Index(list, "• Tomatoes (x2)\n")
	require.True(t, bread >= 0 && garlic >= 0 && milk >= 0 && tomatoes >= 0, list)
	assert.True(t, bread < garlic && garlic < milk && milk < tomatoes, "entries must be sorted")
}

func TestMenuCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewMenu(newStub(), strings.NewReader("3\n"), &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
