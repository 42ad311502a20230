package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/backend/internal/adapters/mock"
	"github.com/carebridge/backend/internal/api/handlers"
	"github.com/carebridge/backend/internal/application/services"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
)

func newVoiceHandler(delay time.Duration) (*handlers.VoiceHandler, *services.VoiceService) {
	service := services.NewVoiceService(map[entities.VoiceProfile]providers.SpeechRecognizer{
		entities.VoiceProfileTranslation: mock.NewSpeechRecognizer(delay, mock.TranslationVoiceTranscript),
		entities.VoiceProfileSign:        mock.NewSpeechRecognizer(delay, mock.SignVoiceTranscript),
	})
	return handlers.NewVoiceHandler(service), service
}

func startRecording(t *testing.T, handler *handlers.VoiceHandler, body string) entities.Recording {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/voice/recordings", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.StartRecording(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var rec entities.Recording
	decodeBody(t, w, &rec)
	return rec
}

func TestVoiceHandler_RecordAndWait(t *testing.T) {
	handler, service := newVoiceHandler(5 * time.Millisecond)
	defer service.Close()

	rec := startRecording(t, handler, `{"profile":"translation"}`)
	assert.Equal(t, entities.RecordingStatusRecording, rec.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/voice/recordings/"+rec.ID, nil)
	req.SetPathValue("id", rec.ID)
	w := httptest.NewRecorder()
	handler.GetRecording(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var done entities.Recording
	decodeBody(t, w, &done)
	assert.Equal(t, entities.RecordingStatusCompleted, done.Status)
	assert.Equal(t, "I have been feeling tired and have a headache.", done.Transcript)
}

func TestVoiceHandler_StopRecording(t *testing.T) {
	handler, service := newVoiceHandler(time.Hour)
	defer service.Close()

	rec := startRecording(t, handler, `{"profile":"sign"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/voice/recordings/"+rec.ID+"?wait=false", nil)
	req.SetPathValue("id", rec.ID)
	w := httptest.NewRecorder()
	handler.GetRecording(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var pending entities.Recording
	decodeBody(t, w, &pending)
	assert.Equal(t, entities.RecordingStatusRecording, pending.Status)

	req = httptest.NewRequest(http.MethodDelete, "/api/voice/recordings/"+rec.ID, nil)
	req.SetPathValue("id", rec.ID)
	w = httptest.NewRecorder()
	handler.StopRecording(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stopped entities.Recording
	decodeBody(t, w, &stopped)
	assert.Equal(t, entities.RecordingStatusStopped, stopped.Status)
	assert.Empty(t, stopped.Transcript)
}

func TestVoiceHandler_Errors(t *testing.T) {
	handler, service := newVoiceHandler(time.Hour)
	defer service.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/voice/recordings", strings.NewReader(`{"profile":"karaoke"}`))
	w := httptest.NewRecorder()
	handler.StartRecording(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/voice/recordings/missing", nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.StopRecording(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
