package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/carebridge/backend/internal/domain/entities"
)

// SignInterpreter is the sign language panel used by SignHandler
type SignInterpreter interface {
	Languages() []entities.SignLanguage
	Phrases() []string
	Gestures() []entities.SignGesture
	ModelLoaded() bool
	Animate(text, language string) (*entities.SignAnimation, error)
	VoiceToSign(ctx context.Context, language string) (*entities.SignAnimation, error)
	Detect(ctx context.Context, frame entities.Frame) (*entities.SignDetection, error)
}

// CaptureSessions runs camera detection sessions
type CaptureSessions interface {
	Start(ctx context.Context) (*entities.CaptureSnapshot, error)
	Snapshot(id string) (*entities.CaptureSnapshot, error)
	Stop(id string) (*entities.CaptureSnapshot, error)
}

// SignHandler handles sign language requests
type SignHandler struct {
	service  SignInterpreter
	sessions CaptureSessions
}

// NewSignHandler creates a new sign handler
func NewSignHandler(service SignInterpreter, sessions CaptureSessions) *SignHandler {
	return &SignHandler{
		service:  service,
		sessions: sessions,
	}
}

// ListLanguages handles GET /api/sign/languages
func (h *SignHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"languages": h.service.Languages(),
	})
}

// ListPhrases handles GET /api/sign/phrases
func (h *SignHandler) ListPhrases(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"phrases": h.service.Phrases(),
	})
}

// ListGestures handles GET /api/sign/gestures
func (h *SignHandler) ListGestures(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"gestures":     h.service.Gestures(),
		"model_loaded": h.service.ModelLoaded(),
	})
}

type animateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Animate handles POST /api/sign/animations
func (h *SignHandler) Animate(w http.ResponseWriter, r *http.Request) {
	var req animateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	animation, err := h.service.Animate(req.Text, req.Language)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, animation)
}

// VoiceToSign handles POST /api/sign/voice
func (h *SignHandler) VoiceToSign(w http.ResponseWriter, r *http.Request) {
	var req animateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	animation, err := h.service.VoiceToSign(r.Context(), req.Language)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, animation)
}

// Detect handles POST /api/sign/detect
func (h *SignHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var frame entities.Frame
	if err := decodeJSON(r, &frame); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if frame.CapturedAt.IsZero() {
		frame.CapturedAt = time.Now()
	}

	detection, err := h.service.Detect(r.Context(), frame)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sign":             detection.Sign,
		"meaning":          detection.Meaning,
		"confidence":       detection.Confidence,
		"confidence_score": detection.Percent(),
	})
}

// StartSession handles POST /api/sign/sessions
func (h *SignHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Start(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, snapshot)
}

// GetSession handles GET /api/sign/sessions/{id}
func (h *SignHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Snapshot(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

// StopSession handles DELETE /api/sign/sessions/{id}
func (h *SignHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Stop(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}
