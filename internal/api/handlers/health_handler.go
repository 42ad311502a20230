package handlers

import (
	"net/http"
	"time"
)

// StreamStats reports live stream connections
type StreamStats interface {
	GetClientCount() int
}

// HealthHandler answers liveness checks
type HealthHandler struct {
	startedAt time.Time
	streams   StreamStats
}

// NewHealthHandler creates a health handler. streams may be nil.
func NewHealthHandler(streams StreamStats) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), streams: streams}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}
	if h.streams != nil {
		body["stream_clients"] = h.streams.GetClientCount()
	}
	respondWithJSON(w, http.StatusOK, body)
}
