package repositories

import (
	"context"
	"strings"

	"github.com/carebridge/backend/internal/domain/entities"
)

// PatientRepository defines the interface for patient record access
type PatientRepository interface {
	// Search returns the patients whose name or patient ID contains query
	Search(ctx context.Context, query string) ([]*entities.PatientRecord, error)

	// GetByID retrieves a patient by record ID
	GetByID(ctx context.Context, id string) (*entities.PatientRecord, error)

	// History returns the visits, prescriptions and labs attached to a patient
	History(ctx context.Context, id string) (*entities.PatientHistory, error)
}

// FilterPatients returns, in order, the patients whose name or patient ID
// contains query case-insensitively.
func FilterPatients(patients []*entities.PatientRecord, query string) []*entities.PatientRecord {
	query = strings.ToLower(query)
	out := make([]*entities.PatientRecord, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.PatientName), query) ||
			strings.Contains(strings.ToLower(p.PatientID), query) {
			out = append(out, p)
		}
	}
	return out
}
