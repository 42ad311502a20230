package repositories

import (
	"context"

	"github.com/carebridge/backend/internal/domain/entities"
)

// MessageRepository defines the interface for the conversation log
type MessageRepository interface {
	// Append adds a message to the end of the conversation
	Append(ctx context.Context, message *entities.Message) error

	// List returns the conversation in append order
	List(ctx context.Context) ([]*entities.Message, error)
}
