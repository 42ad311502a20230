package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/backend/internal/domain/entities"
)

// Translator substitutes medical terms between languages
type Translator interface {
	Translate(text, source, target string) string
	Supports(source, target string) bool
}

// Conversation is the doctor/patient conversation used by TranslationHandler
type Conversation interface {
	Languages() []entities.Language
	Messages(ctx context.Context) ([]*entities.Message, error)
	Send(ctx context.Context, req entities.SendMessageRequest) (*entities.Message, error)
}

// TranslationHandler handles translation and conversation requests
type TranslationHandler struct {
	translator   Translator
	conversation Conversation
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(translator Translator, conversation Conversation) *TranslationHandler {
	return &TranslationHandler{
		translator:   translator,
		conversation: conversation,
	}
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Translate handles POST /api/translate
func (h *TranslationHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if req.Source == "" || req.Target == "" {
		respondWithError(w, http.StatusBadRequest, "source and target languages are required")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"text":        req.Text,
		"translation": h.translator.Translate(req.Text, req.Source, req.Target),
		"language":    entities.LanguagePair(req.Source, req.Target),
		"supported":   h.translator.Supports(req.Source, req.Target),
	})
}

// ListLanguages handles GET /api/translation/languages
func (h *TranslationHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"languages": h.conversation.Languages(),
	})
}

// ListMessages handles GET /api/conversations/messages
func (h *TranslationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.conversation.Messages(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// SendMessage handles POST /api/conversations/messages
func (h *TranslationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req entities.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	message, err := h.conversation.Send(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, message)
}
