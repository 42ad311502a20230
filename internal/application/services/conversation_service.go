package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/adapters/fixtures"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/domain/repositories"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

const (
	defaultSourceLanguage = "en"
	defaultTargetLanguage = "es"
)

// ConversationService manages the translated doctor/patient conversation
type ConversationService struct {
	repo       repositories.MessageRepository
	translator *TranslationService
	eventBus   providers.EventBus
	now        func() time.Time
}

// NewConversationService creates a new conversation service. eventBus may be nil.
func NewConversationService(repo repositories.MessageRepository, translator *TranslationService, eventBus providers.EventBus) *ConversationService {
	return &ConversationService{
		repo:       repo,
		translator: translator,
		eventBus:   eventBus,
		now:        time.Now,
	}
}

// Languages lists the languages offered by the conversation panel
func (s *ConversationService) Languages() []entities.Language {
	return fixtures.TranslationLanguages()
}

// Messages returns the conversation in order
func (s *ConversationService) Messages(ctx context.Context) ([]*entities.Message, error) {
	return s.repo.List(ctx)
}

// Send translates and appends a message, then publishes it to subscribers
func (s *ConversationService) Send(ctx context.Context, req entities.SendMessageRequest) (*entities.Message, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.NewValidationError("message text is required")
	}
	if req.Sender == "" {
		req.Sender = entities.SenderPatient
	}
	if !req.Sender.Valid() {
		return nil, apperrors.NewValidationError("sender must be patient or doctor")
	}
	if req.Source == "" {
		req.Source = defaultSourceLanguage
	}
	if req.Target == "" {
		req.Target = defaultTargetLanguage
	}

	message := &entities.Message{
		ID:          uuid.New().String(),
		Text:        req.Text,
		Translation: s.translator.Translate(req.Text, req.Source, req.Target),
		Sender:      req.Sender,
		Timestamp:   s.now(),
		Language:    entities.LanguagePair(req.Source, req.Target),
	}

	if err := s.repo.Append(ctx, message); err != nil {
		return nil, apperrors.NewInternalError("failed to store message", err)
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, providers.EventChannelConversation, message); err != nil {
			log.Warn().Err(err).Str("message_id", message.ID).Msg("failed to publish conversation message")
		}
	}

	return message, nil
}

// Subscribe streams messages sent after the call until ctx is done
func (s *ConversationService) Subscribe(ctx context.Context) (<-chan *entities.Message, error) {
	if s.eventBus == nil {
		return nil, apperrors.NewInternalError("conversation streaming is not available", nil)
	}
	return s.eventBus.Subscribe(ctx, providers.EventChannelConversation)
}

// CloseStreams ends every open conversation stream so subscribers can
// disconnect before shutdown
func (s *ConversationService) CloseStreams(ctx context.Context) error {
	if s.eventBus == nil {
		return nil
	}
	return s.eventBus.Unsubscribe(ctx, providers.EventChannelConversation)
}
