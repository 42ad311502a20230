package providers

import (
	"context"

	"github.com/carebridge/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to conversation events
type EventBus interface {
	// Publish publishes a message to all subscribers of channel
	Publish(ctx context.Context, channel string, message *entities.Message) error

	// Subscribe subscribes to messages on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.Message, error)

	// Unsubscribe drops every subscriber of a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelConversation carries every message appended to the conversation
const EventChannelConversation = "conversation:messages"
