package services

import (
	"context"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
)

// PatientService handles patient record lookups
type PatientService struct {
	repo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// Search returns patients whose name or patient ID contains query. An empty
// query returns every patient.
func (s *PatientService) Search(ctx context.Context, query string) ([]*entities.PatientRecord, error) {
	return s.repo.Search(ctx, query)
}

// Get retrieves a patient record by ID
func (s *PatientService) Get(ctx context.Context, id string) (*entities.PatientRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// History returns the medical history of a patient
func (s *PatientService) History(ctx context.Context, id string) (*entities.PatientHistory, error) {
	return s.repo.History(ctx, id)
}
