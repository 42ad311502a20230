package providers

import "context"

// SpeechRecognizer turns a voice capture into text
type SpeechRecognizer interface {
	// Recognize blocks until a transcript is available or ctx is done
	Recognize(ctx context.Context) (string, error)
}
