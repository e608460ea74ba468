// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/models"
)

// Publisher is what the service layer needs to announce favorite changes.
type Publisher interface {
	PublishFavoriteSaved(ctx context.Context, fav models.Favorite) error
	PublishFavoriteDeleted(ctx context.Context, recipeID int64) error
}

// BusConfig configures the in-process pub/sub.
type BusConfig struct {
	// OutputChannelBuffer is the per-subscriber channel buffer.
	OutputChannelBuffer int64
}

// DefaultBusConfig returns a small buffer; favorites change at human speed.
func DefaultBusConfig() BusConfig {
	return BusConfig{OutputChannelBuffer: 64}
}

// Bus wraps a Watermill GoChannel. Messages published while nobody is
// subscribed are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the pub/sub with Watermill logging routed through zerolog.
func NewBus(cfg BusConfig) *Bus {
	logger := watermill.NewSlogLogger(logging.NewComponentSlogLogger("events"))
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.OutputChannelBuffer,
		}, logger),
		logger: logger,
	}
}

// Publish encodes event and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, event FavoriteEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("event bus is closed")
	}

	data, err := event.Marshal()
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.SetContext(ctx)
	if cid := logging.CorrelationIDFromContext(ctx); cid != "" {
		msg.Metadata.Set("correlation_id", cid)
	}
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		msg.Metadata.Set("request_id", rid)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.FavoriteEventsPublished.WithLabelValues(topic).Inc()
	return nil
}

// PublishFavoriteSaved announces a saved (or overwritten) favorite.
func (b *Bus) PublishFavoriteSaved(ctx context.Context, fav models.Favorite) error {
	return b.Publish(ctx, TopicFavoriteSaved, NewFavoriteEvent(fav.ID, fav.Title, len(fav.Ingredients)))
}

// PublishFavoriteDeleted announces a removed favorite.
func (b *Bus) PublishFavoriteDeleted(ctx context.Context, recipeID int64) error {
	return b.Publish(ctx, TopicFavoriteDeleted, NewFavoriteEvent(recipeID, "", 0))
}

// Subscribe returns the message channel for topic. The channel is closed
// when ctx is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts down the pub/sub and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishFavoriteSaved(context.Context, models.Favorite) error { return nil }
func (NopPublisher) PublishFavoriteDeleted(context.Context, int64) error         { return nil }

var (
	_ Publisher = (*Bus)(nil)
	_ Publisher = NopPublisher{}
)
