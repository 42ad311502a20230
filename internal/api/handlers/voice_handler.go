package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/backend/internal/domain/entities"
)

// VoiceRecorder is the simulated voice input used by VoiceHandler
type VoiceRecorder interface {
	Start(profile entities.VoiceProfile) (*entities.Recording, error)
	Stop(id string) (*entities.Recording, error)
	Status(id string) (*entities.Recording, error)
	Result(ctx context.Context, id string) (*entities.Recording, error)
}

// VoiceHandler handles voice recording requests
type VoiceHandler struct {
	service VoiceRecorder
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(service VoiceRecorder) *VoiceHandler {
	return &VoiceHandler{service: service}
}

// StartRecording handles POST /api/voice/recordings
func (h *VoiceHandler) StartRecording(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile entities.VoiceProfile `json:"profile"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	recording, err := h.service.Start(req.Profile)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, recording)
}

// GetRecording handles GET /api/voice/recordings/{id}. It waits for the
// transcript unless called with wait=false.
func (h *VoiceHandler) GetRecording(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		recording *entities.Recording
		err       error
	)
	if r.URL.Query().Get("wait") == "false" {
		recording, err = h.service.Status(id)
	} else {
		recording, err = h.service.Result(r.Context(), id)
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, recording)
}

// StopRecording handles DELETE /api/voice/recordings/{id}
func (h *VoiceHandler) StopRecording(w http.ResponseWriter, r *http.Request) {
	recording, err := h.service.Stop(r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, recording)
}
