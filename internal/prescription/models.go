package prescription

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
)

type Status string

const (
	StatusDraft     Status = "brouillon"
	StatusSent      Status = "envoyee"
	StatusDelivered Status = "delivree"
	StatusCancelled Status = "annulee"
)

var Statuses = []Status{StatusDraft, StatusSent, StatusDelivered, StatusCancelled}

var transitions = map[Status][]Status{
	StatusDraft: {StatusSent, StatusCancelled},
	StatusSent:  {StatusDelivered, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Medication is a catalog entry with its default posology
type Medication struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Dosage            string `json:"dosage"`
	Frequency         string `json:"frequency"`
	Duration          string `json:"duration"`
	Instructions      string `json:"instructions"`
	Category          string `json:"category"`
	Contraindications string `json:"contraindications"`
	SideEffects       string `json:"side_effects"`
}

// Posology is what the patient is actually told to take
type Posology struct {
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// PrescribedMedication is a catalog medication on a prescription, with
// optional per-prescription overrides
type PrescribedMedication struct {
	Medication
	PrescriptionID     string `json:"prescription_id"`
	CustomDosage       string `json:"custom_dosage,omitempty"`
	CustomFrequency    string `json:"custom_frequency,omitempty"`
	CustomDuration     string `json:"custom_duration,omitempty"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

// Effective applies the overrides to the catalog defaults
func (pm PrescribedMedication) Effective() Posology {
	pick := func(custom, fallback string) string {
		if custom != "" {
			return custom
		}
		return fallback
	}
	return Posology{
		Dosage:       pick(pm.CustomDosage, pm.Dosage),
		Frequency:    pick(pm.CustomFrequency, pm.Frequency),
		Duration:     pick(pm.CustomDuration, pm.Duration),
		Instructions: pick(pm.CustomInstructions, pm.Instructions),
	}
}

type Prescription struct {
	ID            string                 `json:"id"`
	PatientID     string                 `json:"patient_id"`
	PatientName   string                 `json:"patient_name"`
	PatientAge    int                    `json:"patient_age"`
	PatientWeight float64                `json:"patient_weight,omitempty"`
	Date          string                 `json:"date"`
	Doctor        string                 `json:"doctor"`
	Medications   []PrescribedMedication `json:"medications"`
	Diagnosis     string                 `json:"diagnosis"`
	Symptoms      string                 `json:"symptoms"`
	Notes         string                 `json:"notes"`
	Status        Status                 `json:"status"`
	Pharmacy      string                 `json:"pharmacy,omitempty"`
	DeliveryDate  string                 `json:"delivery_date,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func (p Prescription) RecordID() string { return p.ID }

type PrescribedLine struct {
	MedicationID  string      `json:"medication_id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	CategoryBadge badge.Badge `json:"category_badge"`
	Effective     Posology    `json:"effective"`
}

type PrescriptionView struct {
	Prescription
	StatusBadge *badge.Badge     `json:"status_badge,omitempty"`
	Lines       []PrescribedLine `json:"lines"`
}

type CatalogEntry struct {
	Medication
	CategoryBadge badge.Badge `json:"category_badge"`
}

type MedicationOrder struct {
	MedicationID       string `json:"medication_id"`
	CustomDosage       string `json:"custom_dosage"`
	CustomFrequency    string `json:"custom_frequency"`
	CustomDuration     string `json:"custom_duration"`
	CustomInstructions string `json:"custom_instructions"`
}

type CreatePrescriptionRequest struct {
	PatientID     string            `json:"patient_id"`
	PatientName   string            `json:"patient_name"`
	PatientAge    int               `json:"patient_age"`
	PatientWeight float64           `json:"patient_weight"`
	Doctor        string            `json:"doctor"`
	Diagnosis     string            `json:"diagnosis"`
	Symptoms      string            `json:"symptoms"`
	Notes         string            `json:"notes"`
	Medications   []MedicationOrder `json:"medications"`
}

// UpdateStatusRequest moves a prescription along its lifecycle. Pharmacy is
// required to deliver unless one is already on record.
type UpdateStatusRequest struct {
	Status   Status `json:"status"`
	Pharmacy string `json:"pharmacy,omitempty"`
}

// ListFilter selects prescriptions. Search matches patient name, prescription
// id and diagnosis.
type ListFilter struct {
	Search string
	Status string
}

type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

type ListResult struct {
	Prescriptions []PrescriptionView `json:"prescriptions"`
	Stats         Stats              `json:"stats"`
	Total         int                `json:"total"`
	Pagination    *pagination.Meta   `json:"pagination,omitempty"`
}
