package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/carebridge/backend/internal/adapters/cache"
	"github.com/carebridge/backend/internal/adapters/events"
	"github.com/carebridge/backend/internal/adapters/fixtures"
	mockadapters "github.com/carebridge/backend/internal/adapters/mock"
	"github.com/carebridge/backend/internal/api/handlers"
	"github.com/carebridge/backend/internal/api/middleware"
	"github.com/carebridge/backend/internal/api/routes"
	"github.com/carebridge/backend/internal/application/services"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/infrastructure/clients/mlapi"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T, limiter *middleware.IPRateLimiter) http.Handler {
	t.Helper()

	bus := events.NewMemoryEventBus()
	model := mockadapters.NewSignModel(mockadapters.SignModelConfig{
		Vocabulary:     fixtures.SignGestures(),
		LoadDelay:      time.Millisecond,
		InferenceDelay: time.Millisecond,
		Rand:           mockadapters.NewSeededRand(3),
	})
	signVoice := mockadapters.NewSpeechRecognizer(time.Millisecond, mockadapters.SignVoiceTranscript)

	voice := services.NewVoiceService(map[entities.VoiceProfile]providers.SpeechRecognizer{
		entities.VoiceProfileTranslation: mockadapters.NewSpeechRecognizer(time.Millisecond, mockadapters.TranslationVoiceTranscript),
		entities.VoiceProfileSign:        signVoice,
	})
	capture := services.NewCaptureService(mockadapters.NewCamera(), model, 5*time.Millisecond, nil)
	translator := services.NewTranslationService(services.DefaultDictionary())
	conversation := services.NewConversationService(fixtures.NewMessageStore(nil), translator, bus)

	t.Cleanup(func() {
		capture.Close()
		voice.Close()
		_ = bus.Close()
	})

	ml := services.NewMLPredictionService(mlapi.NewClient("http://127.0.0.1:1", "http://127.0.0.1:1", 50*time.Millisecond), nil)

	sse := handlers.NewSSEHandler(conversation)
	router := routes.NewRouter(routes.Handlers{
		Health:      handlers.NewHealthHandler(sse),
		Symptom:     handlers.NewSymptomHandler(services.NewSymptomService(0, nil)),
		Doctor:      handlers.NewDoctorHandler(services.NewDoctorService(fixtures.NewDoctorStore(fixtures.Doctors()))),
		Patient:     handlers.NewPatientHandler(services.NewPatientService(fixtures.NewPatientStore())),
		Translation: handlers.NewTranslationHandler(translator, conversation),
		SSE:         sse,
		Voice:       handlers.NewVoiceHandler(voice),
		Sign:        handlers.NewSignHandler(services.NewSignLanguageService(model, signVoice, nil), capture),
		ML:          handlers.NewMLHandler(ml),
	}, middleware.NewCacheMiddleware(cache.NewMemoryAdapter(), nil), limiter, []string{"*"}, nil)

	return router.SetupRoutes()
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Endpoints(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"symptoms", http.MethodGet, "/api/symptoms", "", http.StatusOK},
		{"predict", http.MethodPost, "/api/predictions", `{"age":40,"symptoms":["fever","cough"]}`, http.StatusOK},
		{"predict without symptoms", http.MethodPost, "/api/predictions", `{"age":40,"symptoms":[]}`, http.StatusBadRequest},
		{"doctors", http.MethodGet, "/api/doctors?specialty=Cardiology", "", http.StatusOK},
		{"doctor filters", http.MethodGet, "/api/doctors/filters", "", http.StatusOK},
		{"unknown doctor", http.MethodGet, "/api/doctors/999", "", http.StatusNotFound},
		{"patients", http.MethodGet, "/api/patients?q=P001", "", http.StatusOK},
		{"translation languages", http.MethodGet, "/api/translation/languages", "", http.StatusOK},
		{"translate", http.MethodPost, "/api/translate", `{"text":"pain","source":"en","target":"es"}`, http.StatusOK},
		{"messages", http.MethodGet, "/api/conversations/messages", "", http.StatusOK},
		{"sign languages", http.MethodGet, "/api/sign/languages", "", http.StatusOK},
		{"sign phrases", http.MethodGet, "/api/sign/phrases", "", http.StatusOK},
		{"sign gestures", http.MethodGet, "/api/sign/gestures", "", http.StatusOK},
		{"animate", http.MethodPost, "/api/sign/animations", `{"text":"I have pain","language":"bsl"}`, http.StatusCreated},
		{"unknown session", http.MethodGet, "/api/sign/sessions/nope", "", http.StatusNotFound},
		{"ml unavailable", http.MethodGet, "/api/ml/model-info", "", http.StatusBadGateway},
		{"wrong method", http.MethodPut, "/api/symptoms", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_CachesFixtureReads(t *testing.T) {
	h := newTestRouter(t, nil)

	first := serve(h, http.MethodGet, "/api/doctors/filters", "")
	second := serve(h, http.MethodGet, "/api/doctors/filters", "")

	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	messages := serve(h, http.MethodGet, "/api/conversations/messages", "")
	assert.Empty(t, messages.Header().Get("X-Cache"))
}

func TestRouter_SendMessageTranslates(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := serve(h, http.MethodPost, "/api/conversations/messages", `{"text":"I have a headache","sender":"patient"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var msg entities.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "I have a dolor de cabeza", msg.Translation)

	list := serve(h, http.MethodGet, "/api/conversations/messages", "")
	assert.Contains(t, list.Body.String(), "I have a dolor de cabeza")
}

func TestRouter_RateLimitsSimulatedWork(t *testing.T) {
	h := newTestRouter(t, middleware.NewIPRateLimiter(0.001, 1))

	first := serve(h, http.MethodPost, "/api/sign/animations", `{"text":"pain"}`)
	second := serve(h, http.MethodPost, "/api/sign/animations", `{"text":"pain"}`)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Reads are not limited.
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/sign/phrases", "").Code)
	}
}
