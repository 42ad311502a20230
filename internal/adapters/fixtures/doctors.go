package fixtures

import (
	"context"
	"fmt"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

// DoctorStore implements DoctorRepository over a fixed doctor list
type DoctorStore struct {
	doctors []*entities.Doctor
}

// NewDoctorStore creates a store over doctors. A nil list uses the sample directory.
func NewDoctorStore(doctors []*entities.Doctor) repositories.DoctorRepository {
	if doctors == nil {
		doctors = Doctors()
	}
	return &DoctorStore{doctors: doctors}
}

// List returns the doctors matching filter, in directory order
func (s *DoctorStore) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repositories.FilterDoctors(s.doctors, filter), nil
}

// GetByID retrieves a doctor by ID
func (s *DoctorStore) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s not found", id))
}

// Doctors returns the sample directory.
func Doctors() []*entities.Doctor {
	return []*entities.Doctor{
		{
			ID:           "1",
			Name:         "Dr. Maria Rodriguez",
			Specialty:    "Cardiology",
			Rating:       4.8,
			Reviews:      124,
			Location:     "Downtown Medical Center",
			Distance:     "2.3 km",
			Phone:        "+1 (555) 123-4567",
			Availability: "Available today",
			Languages:    []string{"English", "Spanish"},
			Education:    "Harvard Medical School",
			Experience:   15,
			Image:        "https://images.unsplash.com/photo-1758691462858-f1286e5daf40?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&q=80&w=1080",
		},
		{
			ID:           "2",
			Name:         "Dr. Ahmed Hassan",
			Specialty:    "Neurology",
			Rating:       4.9,
			Reviews:      89,
			Location:     "Westside Hospital",
			Distance:     "4.1 km",
			Phone:        "+1 (555) 234-5678",
			Availability: "Next available: Tomorrow 2 PM",
			Languages:    []string{"English", "Arabic"},
			Education:    "Johns Hopkins University",
			Experience:   12,
		},
		{
			ID:           "3",
			Name:         "Dr. Li Wei Chen",
			Specialty:    "Internal Medicine",
			Rating:       4.7,
			Reviews:      156,
			Location:     "North Valley Clinic",
			Distance:     "3.8 km",
			Phone:        "+1 (555) 345-6789",
			Availability: "Available today",
			Languages:    []string{"English", "Chinese"},
			Education:    "Stanford University",
			Experience:   18,
		},
		{
			ID:           "4",
			Name:         "Dr. Sarah Johnson",
			Specialty:    "Emergency Medicine",
			Rating:       4.6,
			Reviews:      203,
			Location:     "Central Hospital",
			Distance:     "1.9 km",
			Phone:        "+1 (555) 456-7890",
			Availability: "Available now",
			Languages:    []string{"English", "French"},
			Education:    "Yale Medical School",
			Experience:   10,
		},
		{
			ID:           "5",
			Name:         "Dr. Priya Patel",
			Specialty:    "Pediatrics",
			Rating:       4.9,
			Reviews:      98,
			Location:     "Southside Medical Plaza",
			Distance:     "5.2 km",
			Phone:        "+1 (555) 567-8901",
			Availability: "Next available: Today 4 PM",
			Languages:    []string{"English", "Hindi"},
			Education:    "UCLA Medical School",
			Experience:   8,
		},
	}
}
