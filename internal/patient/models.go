package patient

import (
	"strings"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

type Status string

const (
	StatusActive   Status = "actif"
	StatusInactive Status = "inactif"
)

var Statuses = []Status{StatusActive, StatusInactive}

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

type TreatmentStatus string

const (
	TreatmentOngoing   TreatmentStatus = "en_cours"
	TreatmentCompleted TreatmentStatus = "termine"
	TreatmentSuspended TreatmentStatus = "suspendu"
)

var TreatmentStatuses = []TreatmentStatus{TreatmentOngoing, TreatmentCompleted, TreatmentSuspended}

type SessionStatus string

const (
	SessionScheduled SessionStatus = "programmee"
	SessionCompleted SessionStatus = "terminee"
	SessionCancelled SessionStatus = "annulee"
)

var SessionStatuses = []SessionStatus{SessionScheduled, SessionCompleted, SessionCancelled}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "especes"
	MethodCard     PaymentMethod = "carte"
	MethodCheque   PaymentMethod = "cheque"
	MethodTransfer PaymentMethod = "virement"
)

var PaymentMethods = []PaymentMethod{MethodCash, MethodCard, MethodCheque, MethodTransfer}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paye"
	PaymentPending PaymentStatus = "en_attente"
	PaymentPartial PaymentStatus = "partiel"
)

var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentPending, PaymentPartial}

type Treatment struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date,omitempty"`
	Status      TreatmentStatus `json:"status"`
	Doctor      string          `json:"doctor"`
	Notes       string          `json:"notes"`
}

type Session struct {
	ID       string        `json:"id"`
	Date     string        `json:"date"`
	Time     string        `json:"time"`
	Type     string        `json:"type"`
	Duration int           `json:"duration"` // minutes
	Doctor   string        `json:"doctor"`
	Notes    string        `json:"notes"`
	Status   SessionStatus `json:"status"`
}

// PaymentEntry is a payment recorded on the patient file itself
type PaymentEntry struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"method"`
	Description string        `json:"description"`
	Status      PaymentStatus `json:"status"`
}

type Patient struct {
	ID               string         `json:"id"`
	LastName         string         `json:"last_name"`
	FirstName        string         `json:"first_name"`
	BirthDate        string         `json:"birth_date"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email"`
	Address          string         `json:"address"`
	Sex              Sex            `json:"sex"`
	BloodType        string         `json:"blood_type,omitempty"`
	RegistrationDate string         `json:"registration_date"`
	Status           Status         `json:"status"`
	LastVisit        string         `json:"last_visit,omitempty"`
	NextVisit        string         `json:"next_visit,omitempty"`
	Allergies        []string       `json:"allergies"`
	MedicalHistory   string         `json:"medical_history"`
	Treatments       []Treatment    `json:"treatments"`
	Sessions         []Session      `json:"sessions"`
	Payments         []PaymentEntry `json:"payments"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (p Patient) RecordID() string { return p.ID }

// FullName is "First Last"
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age in whole years at now; 0 when the birth date is unknown
func (p Patient) Age(now time.Time) int {
	birth, err := query.ParseDate(p.BirthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// PatientView is a patient as rendered by the API
type PatientView struct {
	Patient
	Age   int          `json:"age"`
	Badge *badge.Badge `json:"badge,omitempty"`
}

type CreatePatientRequest struct {
	LastName       string   `json:"last_name"`
	FirstName      string   `json:"first_name"`
	BirthDate      string   `json:"birth_date"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Address        string   `json:"address"`
	Sex            Sex      `json:"sex"`
	BloodType      string   `json:"blood_type"`
	Allergies      []string `json:"allergies"`
	MedicalHistory string   `json:"medical_history"`
}

// UpdatePatientRequest changes only the fields that are present
type UpdatePatientRequest struct {
	LastName       *string   `json:"last_name,omitempty"`
	FirstName      *string   `json:"first_name,omitempty"`
	BirthDate      *string   `json:"birth_date,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Sex            *Sex      `json:"sex,omitempty"`
	BloodType      *string   `json:"blood_type,omitempty"`
	Allergies      *[]string `json:"allergies,omitempty"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	NextVisit      *string   `json:"next_visit,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

type AddTreatmentRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Status      TreatmentStatus `json:"status"`
	Doctor      string          `json:"doctor"`
	Notes       string          `json:"notes"`
}

type AddSessionRequest struct {
	Date     string        `json:"date"`
	Time     string        `json:"time"`
	Type     string        `json:"type"`
	Duration int           `json:"duration"`
	Doctor   string        `json:"doctor"`
	Notes    string        `json:"notes"`
	Status   SessionStatus `json:"status"`
}

type AddPaymentRequest struct {
	Date        string        `json:"date"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"method"`
	Description string        `json:"description"`
	Status      PaymentStatus `json:"status"`
}

// ListFilter selects patients. Search matches last name, first name and phone.
type ListFilter struct {
	Search string
	Status string
}

type Stats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Inactive      int     `json:"inactive"`
	ActivePercent float64 `json:"active_percent"`
}

type ListResult struct {
	Patients   []PatientView    `json:"patients"`
	Stats      Stats            `json:"stats"`
	Total      int              `json:"total"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}
