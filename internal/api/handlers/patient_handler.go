package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/backend/internal/domain/entities"
)

// PatientRecords is the patient lookup used by PatientHandler
type PatientRecords interface {
	Search(ctx context.Context, query string) ([]*entities.PatientRecord, error)
	Get(ctx context.Context, id string) (*entities.PatientRecord, error)
	History(ctx context.Context, id string) (*entities.PatientHistory, error)
}

// PatientHandler handles patient record requests
type PatientHandler struct {
	service PatientRecords
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientRecords) *PatientHandler {
	return &PatientHandler{service: service}
}

// SearchPatients handles GET /api/patients?q=
func (h *PatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// GetHistory handles GET /api/patients/{id}/history
func (h *PatientHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}
