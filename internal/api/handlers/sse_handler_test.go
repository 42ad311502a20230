package handlers_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/backend/internal/adapters/events"
	"github.com/carebridge/backend/internal/adapters/fixtures"
	"github.com/carebridge/backend/internal/api/handlers"
	"github.com/carebridge/backend/internal/application/services"
	"github.com/carebridge/backend/internal/domain/entities"
)

// readEvent returns the next event name and data line of an SSE stream.
func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestSSEHandler_StreamConversation(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	translator := services.NewTranslationService(services.DefaultDictionary())
	conversation := services.NewConversationService(fixtures.NewMessageStore(nil), translator, bus)
	handler := handlers.NewSSEHandler(conversation)

	server := httptest.NewServer(http.HandlerFunc(handler.StreamConversation))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	reader := bufio.NewReader(resp.Body)
	event, _ := readEvent(t, reader)
	assert.Equal(t, "connected", event)
	assert.Equal(t, 1, handler.GetClientCount())

	_, err = conversation.Send(context.Background(), entities.SendMessageRequest{Text: "I feel dizzy"})
	require.NoError(t, err)

	event, data := readEvent(t, reader)
	assert.Equal(t, "message", event)
	assert.Contains(t, data, `"translation":"I feel mareo"`)

	cancel()
	require.Eventually(t, func() bool { return handler.GetClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSSEHandler_SubscribeFailure(t *testing.T) {
	bus := events.NewMemoryEventBus()
	require.NoError(t, bus.Close())

	conversation := services.NewConversationService(fixtures.NewMessageStore(nil),
		services.NewTranslationService(services.DefaultDictionary()), bus)
	handler := handlers.NewSSEHandler(conversation)

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/stream", nil)
	w := httptest.NewRecorder()
	handler.StreamConversation(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
