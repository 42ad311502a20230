package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/backend/internal/domain/entities"
)

// DiseasePredictor fronts the external ML prediction services
type DiseasePredictor interface {
	ModelInfo(ctx context.Context) (*entities.ModelInfo, error)
	SearchSymptoms(ctx context.Context, term string) ([]string, error)
	Predict(ctx context.Context, symptoms []string) (*entities.MLPrediction, error)
	PredictLegacy(ctx context.Context, req entities.LegacyPredictionRequest) (*entities.LegacyPrediction, error)
}

// MLHandler handles ML prediction requests
type MLHandler struct {
	service DiseasePredictor
}

// NewMLHandler creates a new ML handler
func NewMLHandler(service DiseasePredictor) *MLHandler {
	return &MLHandler{service: service}
}

// ModelInfo handles GET /api/ml/model-info
func (h *MLHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.ModelInfo(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

// SearchSymptoms handles GET /api/ml/symptoms?q=
func (h *MLHandler) SearchSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms, err := h.service.SearchSymptoms(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}

// Predict handles POST /api/ml/predict
func (h *MLHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms []string `json:"symptoms"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	prediction, err := h.service.Predict(r.Context(), req.Symptoms)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prediction)
}

// PredictLegacy handles POST /api/ml/legacy-predict
func (h *MLHandler) PredictLegacy(w http.ResponseWriter, r *http.Request) {
	var req entities.LegacyPredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	prediction, err := h.service.PredictLegacy(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prediction)
}
