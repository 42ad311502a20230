package fixtures

import (
	"context"
	"fmt"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/repositories"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

// PatientStore implements PatientRepository over the sample charts.
// Every patient shares the same history set.
type PatientStore struct {
	patients      []*entities.PatientRecord
	visits        []*entities.MedicalVisit
	prescriptions []*entities.Prescription
	labResults    []*entities.LabResult
}

// NewPatientStore creates a store over the sample charts
func NewPatientStore() repositories.PatientRepository {
	return &PatientStore{
		patients:      Patients(),
		visits:        MedicalVisits(),
		prescriptions: Prescriptions(),
		labResults:    LabResults(),
	}
}

// Search returns the patients whose name or patient ID contains query
func (s *PatientStore) Search(ctx context.Context, query string) ([]*entities.PatientRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repositories.FilterPatients(s.patients, query), nil
}

// GetByID retrieves a patient by record ID
func (s *PatientStore) GetByID(ctx context.Context, id string) (*entities.PatientRecord, error) {
	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient %s not found", id))
}

// History returns the patient with the shared history set
func (s *PatientStore) History(ctx context.Context, id string) (*entities.PatientHistory, error) {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.PatientHistory{
		Patient:       patient,
		Visits:        s.visits,
		Prescriptions: s.prescriptions,
		LabResults:    s.labResults,
	}, nil
}

// Patients returns the sample patient charts.
func Patients() []*entities.PatientRecord {
	return []*entities.PatientRecord{
		{
			ID:          "1",
			PatientName: "Maria Gonzalez",
			PatientID:   "P001234",
			DateOfBirth: "1985-03-15",
			Gender:      "Female",
			BloodType:   "O+",
			Allergies:   []string{"Penicillin", "Shellfish"},
			Languages:   []string{"Spanish", "English"},
			LastVisit:   "2024-09-20",
		},
		{
			ID:          "2",
			PatientName: "Ahmed Hassan",
			PatientID:   "P001235",
			DateOfBirth: "1972-11-08",
			Gender:      "Male",
			BloodType:   "A+",
			Allergies:   []string{"None known"},
			Languages:   []string{"Arabic", "English"},
			LastVisit:   "2024-09-18",
		},
		{
			ID:          "3",
			PatientName: "Li Wei Chen",
			PatientID:   "P001236",
			DateOfBirth: "1990-07-22",
			Gender:      "Male",
			BloodType:   "B+",
			Allergies:   []string{"Latex"},
			Languages:   []string{"Chinese", "English"},
			LastVisit:   "2024-09-22",
		},
	}
}

// MedicalVisits returns the sample visit history.
func MedicalVisits() []*entities.MedicalVisit {
	return []*entities.MedicalVisit{
		{
			ID:        "1",
			Date:      "2024-09-20",
			Doctor:    "Dr. Maria Rodriguez",
			Specialty: "Cardiology",
			Diagnosis: "Hypertension",
			Symptoms:  []string{"Chest pain", "Shortness of breath"},
			Treatment: "Prescribed ACE inhibitors, lifestyle modifications",
			Status:    entities.VisitStatusOngoing,
		},
		{
			ID:        "2",
			Date:      "2024-08-15",
			Doctor:    "Dr. Sarah Johnson",
			Specialty: "Family Medicine",
			Diagnosis: "Upper respiratory infection",
			Symptoms:  []string{"Cough", "Fever", "Sore throat"},
			Treatment: "Antibiotics, rest, fluids",
			Status:    entities.VisitStatusCompleted,
		},
		{
			ID:        "3",
			Date:      "2024-07-10",
			Doctor:    "Dr. Ahmed Hassan",
			Specialty: "Neurology",
			Diagnosis: "Migraine",
			Symptoms:  []string{"Severe headache", "Nausea", "Light sensitivity"},
			Treatment: "Sumatriptan, preventive therapy",
			Status:    entities.VisitStatusFollowup,
		},
	}
}

// Prescriptions returns the sample prescriptions.
func Prescriptions() []*entities.Prescription {
	return []*entities.Prescription{
		{
			ID:           "1",
			Medication:   "Lisinopril",
			Dosage:       "10mg",
			Frequency:    "Once daily",
			Duration:     "Ongoing",
			PrescribedBy: "Dr. Maria Rodriguez",
			Date:         "2024-09-20",
			Status:       entities.PrescriptionStatusActive,
		},
		{
			ID:           "2",
			Medication:   "Amoxicillin",
			Dosage:       "500mg",
			Frequency:    "Three times daily",
			Duration:     "7 days",
			PrescribedBy: "Dr. Sarah Johnson",
			Date:         "2024-08-15",
			Status:       entities.PrescriptionStatusCompleted,
		},
	}
}

// LabResults returns the sample lab results.
func LabResults() []*entities.LabResult {
	return []*entities.LabResult{
		{
			ID:          "1",
			Test:        "Complete Blood Count",
			Result:      "Normal",
			NormalRange: "Within normal limits",
			Date:        "2024-09-18",
			OrderedBy:   "Dr. Maria Rodriguez",
			Status:      entities.LabStatusNormal,
		},
		{
			ID:          "2",
			Test:        "Blood Pressure",
			Result:      "145/92 mmHg",
			NormalRange: "<120/80 mmHg",
			Date:        "2024-09-20",
			OrderedBy:   "Dr. Maria Rodriguez",
			Status:      entities.LabStatusAbnormal,
		},
		{
			ID:          "3",
			Test:        "Cholesterol Panel",
			Result:      "Pending",
			NormalRange: "<200 mg/dL",
			Date:        "2024-09-22",
			OrderedBy:   "Dr. Maria Rodriguez",
			Status:      entities.LabStatusPending,
		},
	}
}
