package repositories

import (
	"context"
	"strings"

	"github.com/carebridge/backend/internal/domain/entities"
)

// FilterAll is the sentinel that disables an optional filter.
const FilterAll = "all"

// DoctorRepository defines the interface for doctor directory access
type DoctorRepository interface {
	// List returns the doctors matching filter, in directory order
	List(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)

	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)
}

// DoctorFilter narrows the directory. Query matches name or specialty;
// Specialty, Location and Language are exact and disabled by "" or FilterAll.
type DoctorFilter struct {
	Query     string
	Specialty string
	Location  string
	Language  string
}

// Matches reports whether the doctor satisfies every predicate of the filter.
func (f DoctorFilter) Matches(d *entities.Doctor) bool {
	query := strings.ToLower(f.Query)
	matchesSearch := strings.Contains(strings.ToLower(d.Name), query) ||
		strings.Contains(strings.ToLower(d.Specialty), query)

	return matchesSearch &&
		(disabled(f.Specialty) || d.Specialty == f.Specialty) &&
		(disabled(f.Location) || d.Location == f.Location) &&
		(disabled(f.Language) || d.Speaks(f.Language))
}

// FilterDoctors returns the subsequence of doctors matching filter.
func FilterDoctors(doctors []*entities.Doctor, filter DoctorFilter) []*entities.Doctor {
	out := make([]*entities.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if filter.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

func disabled(value string) bool {
	return value == "" || value == FilterAll
}
