package fixtures

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

func ids(doctors []*entities.Doctor) []string {
	out := make([]string, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.ID)
	}
	return out
}

func TestDoctorStore_List(t *testing.T) {
	store := NewDoctorStore(nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter repositories.DoctorFilter
		want   []string
	}{
		{
			name:   "all filters disabled returns the full directory in order",
			filter: repositories.DoctorFilter{Specialty: "all", Location: "all", Language: "all"},
			want:   []string{"1", "2", "3", "4", "5"},
		},
		{
			name:   "empty values behave like all",
			filter: repositories.DoctorFilter{},
			want:   []string{"1", "2", "3", "4", "5"},
		},
		{
			name:   "query matches name case-insensitively",
			filter: repositories.DoctorFilter{Query: "chen", Specialty: "all", Location: "all", Language: "all"},
			want:   []string{"3"},
		},
		{
			name:   "query matches specialty",
			filter: repositories.DoctorFilter{Query: "MEDICINE"},
			want:   []string{"3", "4"},
		},
		{
			name:   "specialty is exact",
			filter: repositories.DoctorFilter{Specialty: "Neurology"},
			want:   []string{"2"},
		},
		{
			name:   "location is exact",
			filter: repositories.DoctorFilter{Location: "Central Hospital"},
			want:   []string{"4"},
		},
		{
			name:   "language is membership",
			filter: repositories.DoctorFilter{Language: "Spanish"},
			want:   []string{"1"},
		},
		{
			name:   "predicates are combined with AND",
			filter: repositories.DoctorFilter{Query: "dr.", Language: "English", Location: "Westside Hospital"},
			want:   []string{"2"},
		},
		{
			name:   "no match",
			filter: repositories.DoctorFilter{Specialty: "Cardiology", Language: "Hindi"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterDoctors_Idempotent(t *testing.T) {
	filters := []repositories.DoctorFilter{
		{Query: "a"},
		{Language: "English", Query: "dr"},
		{Specialty: "Pediatrics"},
		{Query: "zzz"},
	}

	for _, f := range filters {
		once := repositories.FilterDoctors(Doctors(), f)
		twice := repositories.FilterDoctors(once, f)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestDoctorStore_GetByID(t *testing.T) {
	store := NewDoctorStore(nil)

	doctor, err := store.GetByID(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Priya Patel", doctor.Name)

	_, err = store.GetByID(context.Background(), "42")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}
