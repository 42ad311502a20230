// Package mock implements the simulated speech, sign and camera providers.
package mock

import (
	"context"
	"time"

	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/pkg/mockstub"
)

// Canned transcripts of the two voice inputs.
const (
	SignVoiceTranscript        = "I have been experiencing chest pain"
	TranslationVoiceTranscript = "I have been feeling tired and have a headache."
)

// SpeechRecognizer always hears the same sentence after a fixed delay
type SpeechRecognizer struct {
	delay      time.Duration
	transcript string
}

// NewSpeechRecognizer creates a recognizer answering transcript after delay
func NewSpeechRecognizer(delay time.Duration, transcript string) providers.SpeechRecognizer {
	return &SpeechRecognizer{delay: delay, transcript: transcript}
}

// Recognize waits for the configured delay and returns the canned transcript
func (r *SpeechRecognizer) Recognize(ctx context.Context) (string, error) {
	return mockstub.Resolve(ctx, r.delay, r.transcript).Wait(ctx)
}
