package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
)

// MessageStore implements MessageRepository as an append-only in-memory log
type MessageStore struct {
	mu       sync.RWMutex
	messages []*entities.Message
}

// NewMessageStore creates a conversation log holding seed
func NewMessageStore(seed []*entities.Message) repositories.MessageRepository {
	messages := make([]*entities.Message, len(seed))
	copy(messages, seed)
	return &MessageStore{messages: messages}
}

// Append adds a message to the end of the conversation
func (s *MessageStore) Append(ctx context.Context, message *entities.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

// List returns a snapshot of the conversation in append order
func (s *MessageStore) List(ctx context.Context) ([]*entities.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// SeedConversation returns the opening exchange of the conversation panel,
// timestamped relative to now.
func SeedConversation(now time.Time) []*entities.Message {
	return []*entities.Message{
		{
			ID:          "1",
			Text:        "Hello, I have been experiencing chest pain for the past two days.",
			Translation: "Hola, he estado experimentando dolor en el pecho durante los últimos dos días.",
			Sender:      entities.SenderPatient,
			Timestamp:   now.Add(-5 * time.Minute),
			Language:    "en-es",
		},
		{
			ID:          "2",
			Text:        "Can you describe the pain? Is it sharp or dull?",
			Translation: "¿Puedes describir el dolor? ¿Es agudo o sordo?",
			Sender:      entities.SenderDoctor,
			Timestamp:   now.Add(-4 * time.Minute),
			Language:    "en-es",
		},
	}
}
