// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
)

// HandlerFunc processes one decoded favorite event.
type HandlerFunc func(ctx context.Context, topic string, event FavoriteEvent) error

// FavoriteCounter reports how many favorites are stored.
type FavoriteCounter interface {
	FavoriteCount(ctx context.Context) int
}

// FavoritesGaugeHandler refreshes the favorites_total gauge from counter.
// The event payload is ignored; the store is the source of truth.
func FavoritesGaugeHandler(counter FavoriteCounter) HandlerFunc {
	return func(ctx context.Context, _ string, _ FavoriteEvent) error {
		metrics.FavoritesTotal.Set(float64(counter.FavoriteCount(ctx)))
		return nil
	}
}

// DetailsEvictor drops cached recipe details. *cache.BadgerCache
// implements it.
type DetailsEvictor interface {
	Delete(ctx context.Context, id int64) error
}

// DetailsEvictionHandler removes a deleted favorite's cached details so
// the next lookup goes back to the recipe API. Saved events are ignored.
func DetailsEvictionHandler(evictor DetailsEvictor) HandlerFunc {
	return func(ctx context.Context, topic string, event FavoriteEvent) error {
		if topic != TopicFavoriteDeleted {
			return nil
		}
		if err := evictor.Delete(ctx, event.RecipeID); err != nil {
			return fmt.Errorf("evict details for recipe %d: %w", event.RecipeID, err)
		}
		return nil
	}
}

// Chain runs every handler in order and joins their errors.
func Chain(handlers ...HandlerFunc) HandlerFunc {
	return func(ctx context.Context, topic string, event FavoriteEvent) error {
		var errs []error
		for _, h := range handlers {
			if err := h(ctx, topic, event); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// Consumer subscribes to both favorite topics and runs a handler for each
// message. It implements suture.Service.
type Consumer struct {
	bus     *Bus
	handler HandlerFunc
	onStart HandlerFunc
}

// NewConsumer creates a consumer that runs handler for every event.
func NewConsumer(bus *Bus, handler HandlerFunc) *Consumer {
	return &Consumer{bus: bus, handler: handler}
}

// OnStart sets a handler that runs once, with a zero event, after the
// subscriptions are established.
func (c *Consumer) OnStart(fn HandlerFunc) *Consumer {
	c.onStart = fn
	return c
}

// Serve processes messages until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	saved, err := c.bus.Subscribe(ctx, TopicFavoriteSaved)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicFavoriteSaved, err)
	}
	deleted, err := c.bus.Subscribe(ctx, TopicFavoriteDeleted)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicFavoriteDeleted, err)
	}

	if c.onStart != nil {
		if err := c.onStart(ctx, "", FavoriteEvent{}); err != nil {
			logging.Warn().Err(err).Msg("Favorite consumer start hook failed")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-saved:
			if !ok {
				return nil
			}
			c.process(ctx, TopicFavoriteSaved, msg)
		case msg, ok := <-deleted:
			if !ok {
				return nil
			}
			c.process(ctx, TopicFavoriteDeleted, msg)
		}
	}
}

// process decodes and handles one message. Every message is acked:
// GoChannel redelivers a nacked message immediately, so a failing handler
// would spin.
func (c *Consumer) process(ctx context.Context, topic string, msg *message.Message) {
	event, err := UnmarshalFavoriteEvent(msg.Payload)
	if err != nil {
		logging.Warn().Err(err).Str("topic", topic).Str("message_uuid", msg.UUID).Msg("Dropping malformed favorite event")
		msg.Ack()
		return
	}

	if err := c.handler(ctx, topic, event); err != nil {
		logging.Error().Err(err).Str("topic", topic).Str("message_uuid", msg.UUID).Msg("Favorite event handler failed")
		msg.Ack()
		return
	}

	metrics.FavoriteEventsConsumed.WithLabelValues(topic).Inc()
	logging.Debug().
		Str("topic", topic).
		Int64("recipe_id", event.RecipeID).
		Str("correlation_id", msg.Metadata.Get("correlation_id")).
		Msg("Favorite event consumed")
	msg.Ack()
}

// String returns the service name for supervisor logging.
func (c *Consumer) String() string {
	return "favorite-event-consumer"
}
