package entities

// PatientRecord holds the demographic header of a patient chart.
type PatientRecord struct {
	ID          string   `json:"id"`
	PatientName string   `json:"patient_name"`
	PatientID   string   `json:"patient_id"`
	DateOfBirth string   `json:"date_of_birth"`
	Gender      string   `json:"gender"`
	BloodType   string   `json:"blood_type"`
	Allergies   []string `json:"allergies"`
	Languages   []string `json:"languages"`
	LastVisit   string   `json:"last_visit"`
}

// VisitStatus represents the state of a medical visit
type VisitStatus string

const (
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusOngoing   VisitStatus = "ongoing"
	VisitStatusFollowup  VisitStatus = "followup"
)

// MedicalVisit is one consultation in a patient's history.
type MedicalVisit struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Doctor    string      `json:"doctor"`
	Specialty string      `json:"specialty"`
	Diagnosis string      `json:"diagnosis"`
	Symptoms  []string    `json:"symptoms"`
	Treatment string      `json:"treatment"`
	Status    VisitStatus `json:"status"`
}

// PrescriptionStatus represents the state of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusActive       PrescriptionStatus = "active"
	PrescriptionStatusCompleted    PrescriptionStatus = "completed"
	PrescriptionStatusDiscontinued PrescriptionStatus = "discontinued"
)

// Prescription is a medication order.
type Prescription struct {
	ID           string             `json:"id"`
	Medication   string             `json:"medication"`
	Dosage       string             `json:"dosage"`
	Frequency    string             `json:"frequency"`
	Duration     string             `json:"duration"`
	PrescribedBy string             `json:"prescribed_by"`
	Date         string             `json:"date"`
	Status       PrescriptionStatus `json:"status"`
}

// LabStatus represents the state of a lab result
type LabStatus string

const (
	LabStatusNormal   LabStatus = "normal"
	LabStatusAbnormal LabStatus = "abnormal"
	LabStatusPending  LabStatus = "pending"
)

// LabResult is a laboratory test outcome.
type LabResult struct {
	ID          string    `json:"id"`
	Test        string    `json:"test"`
	Result      string    `json:"result"`
	NormalRange string    `json:"normal_range"`
	Date        string    `json:"date"`
	OrderedBy   string    `json:"ordered_by"`
	Status      LabStatus `json:"status"`
}

// PatientHistory groups a patient with their visits, prescriptions and labs.
type PatientHistory struct {
	Patient       *PatientRecord  `json:"patient"`
	Visits        []*MedicalVisit `json:"visits"`
	Prescriptions []*Prescription `json:"prescriptions"`
	LabResults    []*LabResult    `json:"lab_results"`
}
