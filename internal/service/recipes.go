// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/recipehelper/internal/database"
	"github.com/tomtom215/recipehelper/internal/events"
	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
	"github.com/tomtom215/recipehelper/internal/shopping"
	"github.com/tomtom215/recipehelper/internal/spoonacular"
)

var (
	// ErrRecipeNotFound is returned when the lookup produced no usable details.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrStoreFailed is returned when the favorite could not be written.
	ErrStoreFailed = errors.New("favorite store failed")
)

// RecipeView is a recipe's details plus whether it is saved.
type RecipeView struct {
	models.RecipeDetails
	IsFavorite bool `json:"is_favorite"`
}

// ShoppingListView is every favorite together with the merged list.
type ShoppingListView struct {
	Favorites []models.Favorite `json:"favorites"`
	Entries   []shopping.Entry  `json:"entries"`
}

// RecipeService is safe for concurrent use.
type RecipeService struct {
	finder    spoonacular.Finder
	db        *database.DB
	publisher events.Publisher
}

// NewRecipeService wires the service. A nil publisher disables events.
func NewRecipeService(finder spoonacular.Finder, db *database.DB, publisher events.Publisher) *RecipeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &RecipeService{finder: finder, db: db, publisher: publisher}
}

// Search looks up recipes using ingredient. Blank input returns an empty
// result without calling the API.
func (s *RecipeService) Search(ctx context.Context, ingredient string) []models.RecipeSummary {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return []models.RecipeSummary{}
	}
	return s.finder.SearchByIngredient(ctx, ingredient)
}

// Recipe returns the details of one recipe. The boolean is false when the
// lookup produced nothing.
func (s *RecipeService) Recipe(ctx context.Context, id int64) (RecipeView, bool) {
	details := s.finder.RecipeDetails(ctx, id)
	if details.IsEmpty() {
		return RecipeView{}, false
	}

	view := RecipeView{RecipeDetails: details}
	err := s.db.WithSession(ctx, func(sess *database.Session) error {
		_, view.IsFavorite = sess.GetFavorite(ctx, id)
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Could not check favorite status")
	}
	return view, true
}

// SaveFavorite fetches the recipe's details and stores them, replacing
// any earlier copy.
func (s *RecipeService) SaveFavorite(ctx context.Context, id int64) (models.Favorite, error) {
	details := s.finder.RecipeDetails(ctx, id)
	if details.IsEmpty() {
		return models.Favorite{}, ErrRecipeNotFound
	}

	fav := models.Favorite{ID: id, Title: details.Title, Ingredients: details.Ingredients}
	if fav.Ingredients == nil {
		fav.Ingredients = []string{}
	}

	var saved bool
	err := s.db.WithSession(ctx, func(sess *database.Session) error {
		saved = sess.SaveFavorite(ctx, fav.ID, fav.Title, fav.Ingredients)
		return nil
	})
	if err != nil || !saved {
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Store unavailable")
		}
		return models.Favorite{}, ErrStoreFailed
	}

	if err := s.publisher.PublishFavoriteSaved(ctx, fav); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Failed to publish favorite saved event")
	}
	logging.Ctx(ctx).Info().Int64("recipe_id", id).Str("title", fav.Title).Msg("Favorite saved")
	return fav, nil
}

// DeleteFavorite removes a favorite. It returns false when nothing was removed.
func (s *RecipeService) DeleteFavorite(ctx context.Context, id int64) bool {
	var removed bool
	err := s.db.WithSession(ctx, func(sess *database.Session) error {
		removed = sess.DeleteFavorite(ctx, id)
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("recipe_id", id).Msg("Store unavailable")
		return false
	}
	if !removed {
		return false
	}

	if err := s.publisher.PublishFavoriteDeleted(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", id).Msg("Failed to publish favorite deleted event")
	}
	logging.Ctx(ctx).Info().Int64("recipe_id", id).Msg("Favorite deleted")
	return true
}

// Favorites returns every stored favorite ordered by id. Records with
// malformed ingredients are returned with an empty ingredient list.
func (s *RecipeService) Favorites(ctx context.Context) []models.Favorite {
	return decodeFavorites(ctx, s.records(ctx))
}

// ShoppingList returns every favorite and the merged, sorted shopping list.
func (s *RecipeService) ShoppingList(ctx context.Context) ShoppingListView {
	records := s.records(ctx)

	list, err := shopping.BuildListFromRecords(records)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Shopping list built with skipped favorites")
	}
	entries := list.Entries()
	metrics.ShoppingListEntries.Set(float64(len(entries)))

	return ShoppingListView{
		Favorites: decodeFavorites(ctx, records),
		Entries:   entries,
	}
}

// FavoriteCount returns the number of stored favorites, or 0 when the
// store is unavailable.
func (s *RecipeService) FavoriteCount(ctx context.Context) int {
	var count int
	err := s.db.WithSession(ctx, func(sess *database.Session) error {
		count = sess.CountFavorites(ctx)
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Store unavailable")
	}
	return count
}

// Ping checks that the store is reachable.
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// SchemaVersion reports the highest applied store migration.
func (s *RecipeService) SchemaVersion(ctx context.Context) (int, error) {
	return s.db.SchemaVersion(ctx)
}

func (s *RecipeService) records(ctx context.Context) []models.FavoriteRecord {
	records := []models.FavoriteRecord{}
	err := s.db.WithSession(ctx, func(sess *database.Session) error {
		records = sess.GetFavorites(ctx)
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Store unavailable")
	}
	return records
}

func decodeFavorites(ctx context.Context, records []models.FavoriteRecord) []models.Favorite {
	favorites := make([]models.Favorite, 0, len(records))
	for _, rec := range records {
		ingredients, err := shopping.DecodeIngredients(rec.IngredientsJSON)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("recipe_id", rec.ID).Msg("Favorite has malformed ingredients")
			ingredients = []string{}
		}
		favorites = append(favorites, models.Favorite{ID: rec.ID, Title: rec.Title, Ingredients: ingredients})
	}
	return favorites
}
