package events

import (
	"context"
	"errors"
	"sync"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
)

// ErrBusClosed is returned when using an event bus after Close.
var ErrBusClosed = errors.New("event bus closed")

// MemoryEventBus implements EventBus within a single process
type MemoryEventBus struct {
	hub    *hub
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewMemoryEventBus creates an in-process event bus
func NewMemoryEventBus() providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &MemoryEventBus{hub: newHub(), ctx: ctx, cancel: cancel}
}

// Publish delivers message to the current subscribers of channel
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, message *entities.Message) error {
	if b.ctx.Err() != nil {
		return ErrBusClosed
	}
	b.hub.broadcast(channel, message)
	return nil
}

// Subscribe returns a channel receiving messages until ctx is done
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.Message, error) {
	if b.ctx.Err() != nil {
		return nil, ErrBusClosed
	}
	ch, _ := b.hub.add(channel)

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.hub.remove(channel, ch)
	}()

	return ch, nil
}

// Unsubscribe drops every subscriber of channel
func (b *MemoryEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.hub.closeChannel(channel)
	return nil
}

// Close closes every subscription
func (b *MemoryEventBus) Close() error {
	b.once.Do(func() {
		b.cancel()
		for _, channel := range b.hub.channels() {
			b.hub.closeChannel(channel)
		}
	})
	return nil
}
