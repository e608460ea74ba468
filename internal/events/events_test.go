// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/recipehelper/internal/cache"
	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
)

func TestFavoriteEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   FavoriteEvent
		wantErr bool
	}{
		{name: "valid", event: NewFavoriteEvent(1, "Soup", 2)},
		{name: "missing id", event: FavoriteEvent{RecipeID: 1}, wantErr: true},
		{name: "zero recipe", event: FavoriteEvent{EventID: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.event.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFavoriteEvent_MarshalRejectsInvalid(t *testing.T) {
	t.Parallel()
	e := FavoriteEvent{}
	if _, err := e.Marshal(); err == nil {
		t.Error("Marshal() of invalid event succeeded")
	}
}

type recordedEvent struct {
	topic string
	event FavoriteEvent
}

// startConsumer runs a consumer that forwards events to the returned
// channel and waits until its subscriptions exist.
func startConsumer(t *testing.T, bus *Bus, handlerErr error) <-chan recordedEvent {
	t.Helper()

	received := make(chan recordedEvent, 10)
	started := make(chan struct{})
	var once sync.Once

	consumer := NewConsumer(bus, func(_ context.Context, topic string, e FavoriteEvent) error {
		received <- recordedEvent{topic: topic, event: e}
		return handlerErr
	}).OnStart(func(context.Context, string, FavoriteEvent) error {
		once.Do(func() { close(started) })
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("consumer did not stop")
		}
	})

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not start")
	}
	return received
}

func waitEvent(t *testing.T, ch <-chan recordedEvent) recordedEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return recordedEvent{}
	}
}

func TestBus_PublishAndConsume(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig())
	defer bus.Close()
	received := startConsumer(t, bus, nil)
	ctx := context.Background()

	fav := models.Favorite{ID: 42, Title: "Garlic Bread", Ingredients: []string{"bread", "garlic"}}
	if err := bus.PublishFavoriteSaved(ctx, fav); err != nil {
		t.Fatalf("PublishFavoriteSaved() error = %v", err)
	}
	got := waitEvent(t, received)
	if got.topic != TopicFavoriteSaved || got.event.RecipeID != 42 || got.event.IngredientCount != 2 {
		t.Errorf("saved event = %+v", got)
	}

	if err := bus.PublishFavoriteDeleted(ctx, 42); err != nil {
		t.Fatalf("PublishFavoriteDeleted() error = %v", err)
	}
	got = waitEvent(t, received)
	if got.topic != TopicFavoriteDeleted || got.event.RecipeID != 42 {
		t.Errorf("deleted event = %+v", got)
	}
}

func TestConsumer_HandlerErrorDoesNotStopConsumer(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig())
	defer bus.Close()
	received := startConsumer(t, bus, errors.New("handler failed"))
	ctx := context.Background()

	_ = bus.PublishFavoriteDeleted(ctx, 1)
	waitEvent(t, received)
	_ = bus.PublishFavoriteDeleted(ctx, 2)
	if got := waitEvent(t, received); got.event.RecipeID != 2 {
		t.Errorf("second event RecipeID = %d, want 2", got.event.RecipeID)
	}
}

func TestConsumer_MalformedMessageSkipped(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig())
	defer bus.Close()
	received := startConsumer(t, bus, nil)

	if err := bus.pubsub.Publish(TopicFavoriteSaved, message.NewMessage("bad", []byte("not json"))); err != nil {
		t.Fatalf("raw publish error = %v", err)
	}
	_ = bus.PublishFavoriteDeleted(context.Background(), 3)

	if got := waitEvent(t, received); got.event.RecipeID != 3 {
		t.Errorf("got %+v, want the well-formed event only", got)
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig())
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := bus.PublishFavoriteDeleted(context.Background(), 1); err == nil {
		t.Error("Publish after Close succeeded")
	}
}

type fixedCounter int

func (c fixedCounter) FavoriteCount(context.Context) int { return int(c) }

func TestFavoritesGaugeHandler(t *testing.T) {
	handler := FavoritesGaugeHandler(fixedCounter(4))
	if err := handler(context.Background(), TopicFavoriteSaved, FavoriteEvent{}); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.FavoritesTotal); got != 4 {
		t.Errorf("favorites_total = %v, want 4", got)
	}
}

func TestDetailsEvictionHandler(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(&config.CacheConfig{Enabled: true, InMemory: true, TTL: time.Hour})
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	details := models.RecipeDetails{ID: 42, Title: "Shakshuka", Ingredients: []string{"4 eggs"}}
	if err := c.Set(ctx, details); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	handler := DetailsEvictionHandler(c)

	if err := handler(ctx, TopicFavoriteSaved, NewFavoriteEvent(42, "Shakshuka", 1)); err != nil {
		t.Fatalf("saved handler error = %v", err)
	}
	if _, err := c.Get(ctx, 42); err != nil {
		t.Errorf("Get() after saved event error = %v, want entry kept", err)
	}

	if err := handler(ctx, TopicFavoriteDeleted, NewFavoriteEvent(42, "", 0)); err != nil {
		t.Fatalf("deleted handler error = %v", err)
	}
	if _, err := c.Get(ctx, 42); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Get() after deleted event error = %v, want ErrCacheMiss", err)
	}
}

type failingEvictor struct{}

func (failingEvictor) Delete(context.Context, int64) error { return errors.New("read-only") }

func TestChain_RunsEveryHandler(t *testing.T) {
	t.Parallel()

	var calls int
	counting := func(context.Context, string, FavoriteEvent) error {
		calls++
		return nil
	}

	handler := Chain(DetailsEvictionHandler(failingEvictor{}), counting)
	err := handler(context.Background(), TopicFavoriteDeleted, NewFavoriteEvent(9, "", 0))
	if err == nil {
		t.Error("expected eviction error to surface")
	}
	if calls != 1 {
		t.Errorf("later handler ran %d times, want 1", calls)
	}

	if err := Chain()(context.Background(), TopicFavoriteSaved, FavoriteEvent{}); err != nil {
		t.Errorf("empty chain error = %v", err)
	}
}
