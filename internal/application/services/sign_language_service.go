package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carebridge/backend/internal/adapters/fixtures"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/infrastructure/observability"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

const (
	defaultSignLanguage  = "asl"
	secondsPerSignedWord = 2
)

// SignLanguageService backs the sign language panel
type SignLanguageService struct {
	detector providers.SignDetector
	voice    providers.SpeechRecognizer
	metrics  *observability.Metrics
}

// NewSignLanguageService creates a new sign language service
func NewSignLanguageService(detector providers.SignDetector, voice providers.SpeechRecognizer, metrics *observability.Metrics) *SignLanguageService {
	return &SignLanguageService{
		detector: detector,
		voice:    voice,
		metrics:  metrics,
	}
}

func (s *SignLanguageService) Languages() []entities.SignLanguage {
	return fixtures.SignLanguages()
}

func (s *SignLanguageService) Phrases() []string {
	return fixtures.MedicalPhrases()
}

func (s *SignLanguageService) Gestures() []entities.SignGesture {
	return s.detector.Vocabulary()
}

// LoadModel loads the sign detector, sharing any load already in progress
func (s *SignLanguageService) LoadModel(ctx context.Context) error {
	return s.detector.Load(ctx)
}

// ModelLoaded reports whether detection is available
func (s *SignLanguageService) ModelLoaded() bool {
	return s.detector.Loaded()
}

// Animate describes the signing of text. Each space-separated word takes
// two seconds.
func (s *SignLanguageService) Animate(text, language string) (*entities.SignAnimation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("text is required")
	}
	if language == "" {
		language = defaultSignLanguage
	}
	if !s.supports(language) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported sign language %q", language))
	}

	words := len(strings.Split(text, " "))
	return &entities.SignAnimation{
		ID:          uuid.New().String(),
		Text:        text,
		Language:    language,
		Description: fmt.Sprintf("Generating %s signs for: \"%s\"", strings.ToUpper(language), text),
		Duration:    words * secondsPerSignedWord,
	}, nil
}

// VoiceToSign listens for a sentence and animates it
func (s *SignLanguageService) VoiceToSign(ctx context.Context, language string) (*entities.SignAnimation, error) {
	transcript, err := s.voice.Recognize(ctx)
	if err != nil {
		return nil, apperrors.NewCancelledError("voice recognition was interrupted", err)
	}
	return s.Animate(transcript, language)
}

// Detect runs the sign detector on a single frame
func (s *SignLanguageService) Detect(ctx context.Context, frame entities.Frame) (*entities.SignDetection, error) {
	detection, err := s.detector.Detect(ctx, frame)

	sign := ""
	if detection != nil {
		sign = detection.Sign
	}
	observability.RecordSignInference(ctx, s.metrics, sign, err)

	switch {
	case err == nil:
		return detection, nil
	case errors.Is(err, providers.ErrModelNotLoaded):
		return nil, apperrors.NewConflictError("Sign language model is still loading")
	case ctx.Err() != nil:
		return nil, apperrors.NewCancelledError("sign detection was cancelled", err)
	default:
		return nil, apperrors.NewInternalError("sign detection failed", err)
	}
}

func (s *SignLanguageService) supports(code string) bool {
	for _, l := range fixtures.SignLanguages() {
		if l.Code == code {
			return true
		}
	}
	return false
}
