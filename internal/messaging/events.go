package messaging

import (
	"time"

	"github.com/google/uuid"
)

// ServiceName identifies this service in every event envelope
const ServiceName = "clinic-service"

// Event routing keys
const (
	// Patient events
	EventPatientCreated       = "patient.created"
	EventPatientUpdated       = "patient.updated"
	EventPatientStatusChanged = "patient.status_changed"

	// Appointment events
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentReminderSent  = "appointment.reminder_sent"

	// Billing events
	EventPaymentCreated       = "payment.created"
	EventPaymentStatusChanged = "payment.status_changed"
	EventPaymentOverdue       = "payment.overdue"
	EventPaymentReminderSent  = "payment.reminder_sent"

	// Prescription events
	EventPrescriptionCreated       = "prescription.created"
	EventPrescriptionStatusChanged = "prescription.status_changed"

	// Dental events
	EventDentalProblemCreated       = "dental.problem_created"
	EventDentalProblemStatusChanged = "dental.problem_status_changed"
	EventDentalSessionAdded         = "dental.session_added"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// Event is the envelope published for every routing key
type Event struct {
	BaseEvent
	Data interface{} `json:"data"`
}

// PatientCreatedData is the payload of patient.created
type PatientCreatedData struct {
	PatientID string    `json:"patient_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PatientUpdatedData is the payload of patient.updated
type PatientUpdatedData struct {
	PatientID string    `json:"patient_id"`
	Change    string    `json:"change"` // profile, treatment, session, payment
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusChangedData is the payload of every *.status_changed event
type StatusChangedData struct {
	EntityID  string    `json:"entity_id"`
	PatientID string    `json:"patient_id,omitempty"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// AppointmentCreatedData is the payload of appointment.created
type AppointmentCreatedData struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Doctor        string `json:"doctor"`
	Room          string `json:"room"`
	Urgency       string `json:"urgency"`
}

// ReminderSentData is the payload of appointment/payment reminders
type ReminderSentData struct {
	EntityID  string    `json:"entity_id"`
	PatientID string    `json:"patient_id"`
	Phone     string    `json:"phone,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// PaymentCreatedData is the payload of payment.created
type PaymentCreatedData struct {
	PaymentID     string  `json:"payment_id"`
	InvoiceNumber string  `json:"invoice_number"`
	PatientID     string  `json:"patient_id"`
	AmountDue     float64 `json:"amount_due"`
	AmountPaid    float64 `json:"amount_paid"`
	Status        string  `json:"status"`
}

// PaymentOverdueData is the payload of payment.overdue
type PaymentOverdueData struct {
	PaymentID     string  `json:"payment_id"`
	InvoiceNumber string  `json:"invoice_number"`
	PatientID     string  `json:"patient_id"`
	Remaining     float64 `json:"remaining"`
	DueDate       string  `json:"due_date"`
}

// PrescriptionCreatedData is the payload of prescription.created
type PrescriptionCreatedData struct {
	PrescriptionID string   `json:"prescription_id"`
	PatientID      string   `json:"patient_id"`
	Doctor         string   `json:"doctor"`
	MedicationIDs  []string `json:"medication_ids"`
}

// DentalProblemCreatedData is the payload of dental.problem_created
type DentalProblemCreatedData struct {
	ProblemID string `json:"problem_id"`
	PatientID string `json:"patient_id"`
	Tooth     int    `json:"tooth"`
	Severity  string `json:"severity"`
}

// DentalSessionAddedData is the payload of dental.session_added
type DentalSessionAddedData struct {
	ProblemID string  `json:"problem_id"`
	SessionID string  `json:"session_id"`
	Date      string  `json:"date"`
	Cost      float64 `json:"cost"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}

// NewEvent wraps data in an envelope for eventType
func NewEvent(eventType string, data interface{}) Event {
	return Event{BaseEvent: NewBaseEvent(eventType), Data: data}
}
