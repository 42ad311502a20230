package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
)

const sseHeartbeatInterval = 30 * time.Second

// ConversationStream provides the live feed of conversation messages
type ConversationStream interface {
	Subscribe(ctx context.Context) (<-chan *entities.Message, error)
}

// SSEHandler handles Server-Sent Events for the conversation
type SSEHandler struct {
	stream    ConversationStream
	heartbeat time.Duration

	mu      sync.RWMutex
	clients map[chan *entities.Message]struct{}
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(stream ConversationStream) *SSEHandler {
	return &SSEHandler{
		stream:    stream,
		heartbeat: sseHeartbeatInterval,
		clients:   make(map[chan *entities.Message]struct{}),
	}
}

// StreamConversation handles GET /api/conversations/stream
func (h *SSEHandler) StreamConversation(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx := r.Context()
	messages, err := h.stream.Subscribe(ctx)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan *entities.Message, 10)
	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	go forwardMessages(ctx, messages, clientChan)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("client disconnected from conversation stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			h.sendEvent(w, "message", message)
			flusher.Flush()
		}
	}
}

// forwardMessages copies bus messages to a client, dropping them when the
// client falls behind. clientChan is closed when the bus closes the feed.
func forwardMessages(ctx context.Context, messages <-chan *entities.Message, clientChan chan<- *entities.Message) {
	defer close(clientChan)
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-messages:
			if !ok {
				return
			}
			select {
			case clientChan <- message:
			default:
				log.Warn().Str("message_id", message.ID).Msg("conversation stream client is slow, dropping message")
			}
		}
	}
}

func (h *SSEHandler) registerClient(clientChan chan *entities.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientChan] = struct{}{}
	log.Debug().Int("clients", len(h.clients)).Msg("conversation stream client registered")
}

func (h *SSEHandler) unregisterClient(clientChan chan *entities.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientChan)
	log.Debug().Int("clients", len(h.clients)).Msg("conversation stream client unregistered")
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
