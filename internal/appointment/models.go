package appointment

import (
	"fmt"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
)

type Status string

const (
	StatusScheduled  Status = "programmee"
	StatusConfirmed  Status = "confirmee"
	StatusInProgress Status = "en_cours"
	StatusCompleted  Status = "terminee"
	StatusCancelled  Status = "annulee"
	StatusNoShow     Status = "no_show"
)

var Statuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// transitions lists the statuses reachable from each status.
// terminee, annulee and no_show are terminal.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether an appointment may move from one status to another
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Urgency string

const (
	UrgencyNormal   Urgency = "normale"
	UrgencyUrgent   Urgency = "urgente"
	UrgencyCritical Urgency = "critique"
)

var Urgencies = []Urgency{UrgencyNormal, UrgencyUrgent, UrgencyCritical}

type Appointment struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	PatientPhone string    `json:"patient_phone"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"` // minutes
	Type         string    `json:"type"`
	Doctor       string    `json:"doctor"`
	Status       Status    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	Urgency      Urgency   `json:"urgency"`
	Room         string    `json:"room,omitempty"`
	Reason       string    `json:"reason"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a Appointment) RecordID() string { return a.ID }

// HoldsSlot reports whether the appointment still occupies its doctor's time.
// Cancelled appointments and no-shows free the slot.
func (a Appointment) HoldsSlot() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// SortKey orders appointments by date then time
func (a Appointment) SortKey() string {
	return a.Date + " " + a.Time
}

// span returns the [start, end) minutes of day covered by the appointment
func (a Appointment) span() (int, int, error) {
	start, err := minutesOf(a.Time)
	if err != nil {
		return 0, 0, err
	}
	d := a.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return start, start + d, nil
}

func minutesOf(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

type AppointmentView struct {
	Appointment
	StatusBadge  *badge.Badge `json:"status_badge,omitempty"`
	UrgencyBadge *badge.Badge `json:"urgency_badge,omitempty"`
}

type TimeSlot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// Options are the reference lists offered by the booking form
type Options struct {
	Doctors           []string  `json:"doctors"`
	Rooms             []string  `json:"rooms"`
	ConsultationTypes []string  `json:"consultation_types"`
	TimeSlots         []string  `json:"time_slots"`
	Durations         []int     `json:"durations"`
	Urgencies         []Urgency `json:"urgencies"`
}

type CreateAppointmentRequest struct {
	PatientID    string  `json:"patient_id"`
	PatientName  string  `json:"patient_name"`
	PatientPhone string  `json:"patient_phone"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Duration     int     `json:"duration"`
	Type         string  `json:"type"`
	Doctor       string  `json:"doctor"`
	Room         string  `json:"room"`
	Urgency      Urgency `json:"urgency"`
	Reason       string  `json:"reason"`
	Notes        string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ListFilter selects appointments. Search matches patient name, phone and
// consultation type; Date is an optional exact day.
type ListFilter struct {
	Search string
	Status string
	Doctor string
	Date   string
}

type Stats struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	ByStatus map[Status]int `json:"by_status"`
}

type ListResult struct {
	Appointments []AppointmentView `json:"appointments"`
	Stats        Stats             `json:"stats"`
	Total        int               `json:"total"`
	Pagination   *pagination.Meta  `json:"pagination,omitempty"`
}

type DayView struct {
	Date         string            `json:"date"`
	Appointments []AppointmentView `json:"appointments"`
	Total        int               `json:"total"`
}
