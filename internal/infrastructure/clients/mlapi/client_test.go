package mlapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/backend/internal/domain/entities"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

func TestHTTPClient_ModelInfoAndSymptoms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/model-info":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"total_symptoms":     3,
				"available_symptoms": []string{"itching", "skin_rash", "chills"},
				"model_accuracy":     0.97,
				"is_trained":         true,
			})
		case "/symptoms":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"symptoms": []string{"itching", "skin_rash", "chills"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", server.URL, time.Second)

	info, err := client.ModelInfo(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, info.TotalSymptoms)
	assert.True(t, info.IsTrained)
	assert.InDelta(t, 0.97, info.ModelAccuracy, 1e-9)

	symptoms, err := client.Symptoms(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"itching", "skin_rash", "chills"}, symptoms)
}

func TestHTTPClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Symptoms []string `json:"symptoms"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"itching", "skin rash"}, body.Symptoms)

		_ = json.NewEncoder(w).Encode(entities.MLPrediction{
			PredictedDisease:  "Fungal infection",
			Confidence:        0.91,
			MatchedSymptoms:   []string{"itching", "skin_rash"},
			UnmatchedSymptoms: []string{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, time.Second)
	prediction, err := client.Predict(t.Context(), []string{"itching", "skin rash"})

	require.NoError(t, err)
	assert.Equal(t, "Fungal infection", prediction.PredictedDisease)
	assert.Equal(t, []string{"itching", "skin_rash"}, prediction.MatchedSymptoms)
}

func TestHTTPClient_PredictLegacyUsesLegacyURL(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("primary service should not be called, got %s", r.URL.Path)
	}))
	defer primary.Close()

	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req entities.LegacyPredictionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 42, req.Age)
		assert.Equal(t, "fever, cough", req.Symptoms)
		_ = json.NewEncoder(w).Encode(entities.LegacyPrediction{Disease: "Common Cold"})
	}))
	defer legacy.Close()

	client := NewClient(primary.URL, legacy.URL, time.Second)
	prediction, err := client.PredictLegacy(t.Context(), entities.LegacyPredictionRequest{Age: 42, Symptoms: "fever, cough"})

	require.NoError(t, err)
	assert.Equal(t, "Common Cold", prediction.Disease)
}

func TestHTTPClient_Non2xxIsExternalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"No symptoms provided"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, time.Second)
	_, err := client.Predict(t.Context(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, UnavailableMessage, apperrors.PublicMessage(err))
	assert.Contains(t, err.Error(), "status 400")
}

func TestHTTPClient_ConnectionFailureIsExternalError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, url, time.Second)
	_, err := client.ModelInfo(t.Context())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
}
