package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/carebridge/backend/internal/domain/entities"
)

// SymptomChecker is the symptom checker used by SymptomHandler
type SymptomChecker interface {
	Catalog() []entities.Symptom
	Toggle(symptoms []entities.Symptom, id string) bool
	Predict(ctx context.Context, req entities.PredictionRequest) ([]entities.ConditionPrediction, error)
}

// SymptomHandler handles the rule-based symptom checker
type SymptomHandler struct {
	service SymptomChecker
}

// NewSymptomHandler creates a new symptom handler
func NewSymptomHandler(service SymptomChecker) *SymptomHandler {
	return &SymptomHandler{service: service}
}

// ListSymptoms handles GET /api/symptoms?selected=1,3
func (h *SymptomHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms := h.service.Catalog()
	if selected := r.URL.Query().Get("selected"); selected != "" {
		for _, id := range strings.Split(selected, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if !h.service.Toggle(symptoms, id) {
				respondWithError(w, http.StatusBadRequest, "unknown symptom: "+id)
				return
			}
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}

// Predict handles POST /api/predictions
func (h *SymptomHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req entities.PredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	predictions, err := h.service.Predict(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": predictions,
		"count":       len(predictions),
	})
}
