package services

import (
	"context"

	"github.com/carebridge/backend/internal/adapters/fixtures"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
)

// DoctorService handles the doctor directory
type DoctorService struct {
	repo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(repo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

// List returns the doctors matching filter in directory order
func (s *DoctorService) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	return s.repo.List(ctx, filter)
}

// Get retrieves a doctor by ID
func (s *DoctorService) Get(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// FilterOptions returns the values offered by the directory filter controls
func (s *DoctorService) FilterOptions() entities.DirectoryOptions {
	return fixtures.DirectoryOptions()
}
