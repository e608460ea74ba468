// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/database"
	"github.com/tomtom215/recipehelper/internal/models"
)

type fakeFinder struct {
	mu          sync.Mutex
	results     map[string][]models.RecipeSummary
	details     map[int64]models.RecipeDetails
	searchCalls int
}

func (f *fakeFinder) SearchByIngredient(_ context.Context, ingredient string) []models.RecipeSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if r, ok := f.results[ingredient]; ok {
		return r
	}
	return []models.RecipeSummary{}
}

func (f *fakeFinder) RecipeDetails(_ context.Context, id int64) models.RecipeDetails {
	return f.details[id]
}

func (f *fakeFinder) Ping(context.Context) error { return nil }

type publishedEvent struct {
	topic string
	id    int64
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishFavoriteSaved(_ context.Context, fav models.Favorite) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: "saved", id: fav.ID})
	return p.err
}

func (p *recordingPublisher) PublishFavoriteDeleted(_ context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: "deleted", id: id})
	return p.err
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newFixture(t *testing.T) (*RecipeService, *fakeFinder, *recordingPublisher, *database.DB) {
	t.Helper()
	finder := &fakeFinder{
		results: map[string][]models.RecipeSummary{
			"chicken": {{ID: 1, Title: "Roast Chicken"}, {ID: 2, Title: "Chicken Soup"}},
		},
		details: map[int64]models.RecipeDetails{
			1: {ID: 1, Title: "Roast Chicken", Ingredients: []string{"1 whole chicken", "garlic", "1 cup of milk"}},
			2: {ID: 2, Title: "Chicken Soup", Ingredients: []string{"3 cups chicken broth", "garlic"}},
			3: {ID: 3, Title: "Plain Water"},
		},
	}
	pub := &recordingPublisher{}
	db := newTestDB(t)
	return NewRecipeService(finder, db, pub), finder, pub, db
}

func TestSearchTrimsAndSkipsBlank(t *testing.T) {
	svc, finder, _, _ := newFixture(t)
	ctx := context.Background()

	got := svc.Search(ctx, "  chicken ")
	require.Len(t, got, 2)
	assert.Equal(t, "Roast Chicken", got[0].Title)

	empty := svc.Search(ctx, "   ")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Equal(t, 1, finder.searchCalls, "blank input must not reach the API")
}

func TestRecipeReportsFavoriteStatus(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	view, ok := svc.Recipe(ctx, 1)
	require.True(t, ok)
	assert.False(t, view.IsFavorite)
	assert.Equal(t, "Roast Chicken", view.Title)

	_, err := svc.SaveFavorite(ctx, 1)
	require.NoError(t, err)

	view, ok = svc.Recipe(ctx, 1)
	require.True(t, ok)
	assert.True(t, view.IsFavorite)

	_, ok = svc.Recipe(ctx, 99)
	assert.False(t, ok)
}

func TestSaveFavorite(t *testing.T) {
	svc, _, pub, _ := newFixture(t)
	ctx := context.Background()

	fav, err := svc.SaveFavorite(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Favorite{ID: 2, Title: "Chicken Soup", Ingredients: []string{"3 cups chicken broth", "garlic"}}, fav)
	assert.Equal(t, []publishedEvent{{topic: "saved", id: 2}}, pub.events)

	favorites := svc.Favorites(ctx)
	require.Len(t, favorites, 1)
	assert.Equal(t, fav, favorites[0])
}

func TestSaveFavoriteWithoutIngredients(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	fav, err := svc.SaveFavorite(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, fav.Ingredients)
	assert.Empty(t, fav.Ingredients)
}

func TestSaveFavoriteNotFound(t *testing.T) {
	svc, _, pub, _ := newFixture(t)

	_, err := svc.SaveFavorite(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.Empty(t, pub.events)
}

func TestSaveFavoriteStoreFailure(t *testing.T) {
	svc, _, pub, db := newFixture(t)
	require.NoError(t, db.Close())

	_, err := svc.SaveFavorite(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStoreFailed)
	assert.Empty(t, pub.events)
}

func TestSaveFavoritePublishFailureStillSaves(t *testing.T) {
	svc, _, pub, _ := newFixture(t)
	pub.err = errors.New("bus closed")

	_, err := svc.SaveFavorite(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.FavoriteCount(context.Background()))
}

func TestDeleteFavorite(t *testing.T) {
	svc, _, pub, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.SaveFavorite(ctx, 1)
	require.NoError(t, err)

	assert.True(t, svc.DeleteFavorite(ctx, 1))
	assert.False(t, svc.DeleteFavorite(ctx, 1), "second delete removes nothing")
	assert.False(t, svc.DeleteFavorite(ctx, 12345))

	assert.Equal(t, []publishedEvent{{topic: "saved", id: 1}, {topic: "deleted", id: 1}}, pub.events)
	assert.Empty(t, svc.Favorites(ctx))
}

func TestShoppingList(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.SaveFavorite(ctx, 1)
	require.NoError(t, err)
	_, err = svc.SaveFavorite(ctx, 2)
	require.NoError(t, err)

	view := svc.ShoppingList(ctx)
	require.Len(t, view.Favorites, 2)
	assert.Equal(t, int64(1), view.Favorites[0].ID)

	counts := make(map[string]int, len(view.Entries))
	names := make([]string, 0, len(view.Entries))
	for _, e := range view.Entries {
		counts[e.Name] = e.Count
		names = append(names, e.Name)
	}
	assert.Equal(t, map[string]int{
		"whole chicken": 1,
		"garlic":        2,
		"milk":          1,
		"chicken broth": 1,
	}, counts)
	assert.IsNonDecreasing(t, names)
}

func TestShoppingListEmpty(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	view := svc.ShoppingList(context.Background())
	assert.NotNil(t, view.Favorites)
	assert.Empty(t, view.Favorites)
	assert.Empty(t, view.Entries)
}

func TestSchemaVersion(t *testing.T) {
	svc, _, _, _ := newFixture(t)

	version, err := svc.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestFavoriteCountStoreUnavailable(t *testing.T) {
	svc, _, _, db := newFixture(t)
	require.NoError(t, db.Close())

	assert.Equal(t, 0, svc.FavoriteCount(context.Background()))
	assert.Empty(t, svc.Favorites(context.Background()))
	assert.Error(t, svc.Ping(context.Background()))
	_, err := svc.SchemaVersion(context.Background())
	assert.Error(t, err)
}

func TestNilPublisherDefaultsToNop(t *testing.T) {
	db := newTestDB(t)
	finder := &fakeFinder{details: map[int64]models.RecipeDetails{7: {ID: 7, Title: "Toast", Ingredients: []string{"bread"}}}}
	svc := NewRecipeService(finder, db, nil)

	_, err := svc.SaveFavorite(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, svc.DeleteFavorite(context.Background(), 7))
}
