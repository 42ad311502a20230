package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	redisclient "github.com/carebridge/backend/internal/infrastructure/clients/redis"
)

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// One Redis subscription per channel feeds every local subscriber; it is
// opened with the first subscriber and closed with the last.
type RedisEventBus struct {
	client *redisclient.Client
	hub    *hub

	// mu guards subscriptions and orders hub membership changes against
	// opening and closing feeds.
	mu            sync.Mutex
	subscriptions map[string]io.Closer
	openFeed      func(channel string) io.Closer

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	b := newRedisEventBus(nil)
	b.client = client
	b.openFeed = b.subscribeRedis
	return b
}

func newRedisEventBus(openFeed func(channel string) io.Closer) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		hub:           newHub(),
		subscriptions: make(map[string]io.Closer),
		openFeed:      openFeed,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (b *RedisEventBus) subscribeRedis(channel string) io.Closer {
	pubsub := b.client.Client().Subscribe(b.ctx, channel)
	go b.receiveMessages(channel, pubsub)
	return pubsub
}

// Publish publishes a message to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, message *entities.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debug().Str("channel", channel).Str("message_id", message.ID).Msg("Published message")
	return nil
}

// Subscribe subscribes to messages on a channel
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.Message, error) {
	b.mu.Lock()
	if b.ctx.Err() != nil {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	if _, exists := b.subscriptions[channel]; !exists {
		b.subscriptions[channel] = b.openFeed(channel)
	}
	ch, count := b.hub.add(channel)
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", count).Msg("Subscribed to channel")

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.release(channel, ch)
	}()

	return ch, nil
}

// receiveMessages receives messages from Redis and broadcasts them to subscribers
func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var message entities.Message
			if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
				log.Error().Err(err).Str("channel", channel).Msg("Failed to unmarshal message")
				continue
			}
			b.hub.broadcast(channel, &message)
		}
	}
}

// release drops one local subscriber and closes the feed when it was the
// last. Both happen under mu so a concurrent Subscribe either joins the
// existing feed before the check or opens a new one after it.
func (b *RedisEventBus) release(channel string, ch chan *entities.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hub.remove(channel, ch) {
		b.closeSubscriptionLocked(channel)
	}
}

func (b *RedisEventBus) closeSubscriptionLocked(channel string) {
	if pubsub, ok := b.subscriptions[channel]; ok {
		if err := pubsub.Close(); err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("Failed to close subscription")
		}
		delete(b.subscriptions, channel)
		log.Info().Str("channel", channel).Msg("Closed subscription to channel")
	}
}

// Unsubscribe unsubscribes from a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	b.hub.closeChannel(channel)
	b.closeSubscriptionLocked(channel)
	b.mu.Unlock()
	log.Info().Str("channel", channel).Msg("Unsubscribed from channel")
	return nil
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	b.cancel()
	for _, channel := range b.hub.channels() {
		b.hub.closeChannel(channel)
	}
	for channel := range b.subscriptions {
		b.closeSubscriptionLocked(channel)
	}
	b.mu.Unlock()

	log.Info().Msg("Event bus closed")
	return nil
}
