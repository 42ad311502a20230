package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
)

// DoctorDirectory is the doctor directory used by DoctorHandler
type DoctorDirectory interface {
	List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error)
	Get(ctx context.Context, id string) (*entities.Doctor, error)
	FilterOptions() entities.DirectoryOptions
}

// DoctorHandler handles doctor directory requests
type DoctorHandler struct {
	service DoctorDirectory
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorDirectory) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// ListDoctors handles GET /api/doctors?q=&specialty=&location=&language=
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.DoctorFilter{
		Query:     query.Get("q"),
		Specialty: query.Get("specialty"),
		Location:  query.Get("location"),
		Language:  query.Get("language"),
	}

	doctors, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	doctor, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// FilterOptions handles GET /api/doctors/filters
func (h *DoctorHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.FilterOptions())
}
