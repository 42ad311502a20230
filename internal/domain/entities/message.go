package entities

import (
	"fmt"
	"time"
)

// Sender identifies who wrote a conversation message
type Sender string

const (
	SenderPatient Sender = "patient"
	SenderDoctor  Sender = "doctor"
)

// Valid reports whether s is a known sender.
func (s Sender) Valid() bool {
	return s == SenderPatient || s == SenderDoctor
}

// Message is one entry of the translated doctor/patient conversation.
type Message struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	Sender      Sender    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Language    string    `json:"language"`
}

// SendMessageRequest is the input for appending to the conversation.
type SendMessageRequest struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Language is a supported spoken language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguagePair returns the dictionary key for a source and target language.
func LanguagePair(source, target string) string {
	return fmt.Sprintf("%s-%s", source, target)
}
