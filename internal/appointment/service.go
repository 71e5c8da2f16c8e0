package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

const entity = "appointment"

type Service struct {
	repo      Repository
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	now       func() time.Time

	// booking serializes the slot check and insert of Create
	booking sync.Mutex
}

func NewService(repo Repository, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

func view(a Appointment) AppointmentView {
	return AppointmentView{
		Appointment:  a,
		StatusBadge:  badge.Ptr(StatusBadges, a.Status),
		UrgencyBadge: badge.Ptr(UrgencyBadges, a.Urgency),
	}
}

func views(items []Appointment) []AppointmentView {
	return lo.Map(items, func(a Appointment, _ int) AppointmentView { return view(a) })
}

func (s *Service) All(ctx context.Context) ([]Appointment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return items, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := query.Apply(all,
		query.Contains(filter.Search,
			func(a Appointment) string { return a.PatientName },
			func(a Appointment) string { return a.PatientPhone },
			func(a Appointment) string { return a.Type },
		),
		query.Equals(filter.Status, func(a Appointment) string { return string(a.Status) }),
		query.Equals(filter.Doctor, func(a Appointment) string { return a.Doctor }),
		query.Equals(filter.Date, func(a Appointment) string { return a.Date }),
	)
	if !query.IsAll(filter.Date) {
		matched = query.SortByKey(matched, Appointment.SortKey)
	}

	return &ListResult{
		Appointments: views(matched),
		Stats:        s.stats(all),
		Total:        len(matched),
	}, nil
}

func (s *Service) stats(all []Appointment) Stats {
	now := s.now()
	byStatus := query.CountBy(all, func(a Appointment) Status { return a.Status })
	for _, st := range Statuses {
		if _, ok := byStatus[st]; !ok {
			byStatus[st] = 0
		}
	}
	return Stats{
		Total:    len(all),
		Today:    query.Count(all, func(a Appointment) bool { return query.SameDay(a.Date, now) }),
		ByStatus: byStatus,
	}
}

// Day returns the appointments of one day ordered by start time
func (s *Service) Day(ctx context.Context, date string) (*DayView, error) {
	if _, err := query.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	day := query.Apply(all, query.Where(func(a Appointment) bool { return a.Date == date }))
	day = query.SortByKey(day, func(a Appointment) string { return a.Time })

	return &DayView{Date: date, Appointments: views(day), Total: len(day)}, nil
}

func (s *Service) Today(ctx context.Context) (*DayView, error) {
	return s.Day(ctx, query.FormatDate(s.now()))
}

func (s *Service) Get(ctx context.Context, id string) (*AppointmentView, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "get")
	}
	v := view(a)
	return &v, nil
}

func (s *Service) Create(ctx context.Context, req CreateAppointmentRequest) (*AppointmentView, error) {
	now := s.now()
	if req.Duration == 0 {
		req.Duration = DefaultDuration
	}
	if req.Urgency == "" {
		req.Urgency = UrgencyNormal
	}
	if err := validateCreate(req, now); err != nil {
		return nil, err
	}

	a := Appointment{
		ID:           uuid.New().String(),
		PatientID:    req.PatientID,
		PatientName:  strings.TrimSpace(req.PatientName),
		PatientPhone: strings.TrimSpace(req.PatientPhone),
		Date:         req.Date,
		Time:         req.Time,
		Duration:     req.Duration,
		Type:         strings.TrimSpace(req.Type),
		Doctor:       req.Doctor,
		Status:       StatusScheduled,
		Notes:        strings.TrimSpace(req.Notes),
		Urgency:      req.Urgency,
		Room:         req.Room,
		Reason:       strings.TrimSpace(req.Reason),
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	s.booking.Lock()
	defer s.booking.Unlock()

	unlock, err := store.Lock(ctx, s.repo, "booking")
	if err != nil {
		return nil, fmt.Errorf("failed to lock bookings: %w", err)
	}
	defer unlock()

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if clash := findClash(all, a); clash != nil {
		return nil, fmt.Errorf("%w: %s at %s (appointment %s)", ErrSlotTaken, a.Doctor, clash.Time, clash.ID)
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.RecordOperation(ctx, entity, "create")
	messaging.Emit(ctx, s.publisher, messaging.EventAppointmentCreated, messaging.AppointmentCreatedData{
		AppointmentID: created.ID,
		PatientID:     created.PatientID,
		PatientName:   created.PatientName,
		Date:          created.Date,
		Time:          created.Time,
		Doctor:        created.Doctor,
		Room:          created.Room,
		Urgency:       string(created.Urgency),
	})

	v := view(created)
	return &v, nil
}

// findClash returns an appointment of the same doctor and day whose time
// overlaps a, or nil
func findClash(existing []Appointment, a Appointment) *Appointment {
	start, end, err := a.span()
	if err != nil {
		return nil
	}
	for i := range existing {
		other := existing[i]
		if other.Doctor != a.Doctor || other.Date != a.Date || !other.HoldsSlot() {
			continue
		}
		oStart, oEnd, err := other.span()
		if err != nil {
			continue
		}
		if start < oEnd && oStart < end {
			return &other
		}
	}
	return nil
}

// UpdateStatus moves an appointment along its lifecycle
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*AppointmentView, error) {
	if _, ok := StatusBadges[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	now := s.now()
	var previous Status
	updated, err := s.repo.Update(ctx, id, func(a *Appointment) error {
		previous = a.Status
		if !CanTransition(a.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, status)
		}
		a.Status = status
		a.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err, "update status of")
	}

	s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(status))
	messaging.Emit(ctx, s.publisher, messaging.EventAppointmentStatusChanged, messaging.StatusChangedData{
		EntityID:  updated.ID,
		PatientID: updated.PatientID,
		OldStatus: string(previous),
		NewStatus: string(status),
		ChangedAt: now.UTC(),
	})

	v := view(updated)
	return &v, nil
}

// MarkReminderSent flags that the patient was reminded of an upcoming appointment
func (s *Service) MarkReminderSent(ctx context.Context, id string) (*AppointmentView, error) {
	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(a *Appointment) error {
		if a.Status != StatusScheduled && a.Status != StatusConfirmed {
			return ErrReminderNotAllowed
		}
		a.ReminderSent = true
		a.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err, "send reminder for")
	}

	s.metrics.RecordOperation(ctx, entity, "reminder")
	messaging.Emit(ctx, s.publisher, messaging.EventAppointmentReminderSent, messaging.ReminderSentData{
		EntityID:  updated.ID,
		PatientID: updated.PatientID,
		Phone:     updated.PatientPhone,
		SentAt:    now.UTC(),
	})

	v := view(updated)
	return &v, nil
}

// AvailableSlots reports every bookable slot of date. With a doctor only
// that doctor's appointments occupy slots; otherwise any appointment does.
func (s *Service) AvailableSlots(ctx context.Context, date, doctor string) ([]TimeSlot, error) {
	if _, err := query.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	booked := query.Apply(all,
		query.Where(func(a Appointment) bool { return a.Date == date && a.HoldsSlot() }),
		query.Equals(doctor, func(a Appointment) string { return a.Doctor }),
	)

	slots := make([]TimeSlot, 0, len(TimeSlots))
	for _, t := range TimeSlots {
		slot := TimeSlot{Time: t, Available: true}
		m, _ := minutesOf(t)
		for _, a := range booked {
			start, end, err := a.span()
			if err == nil && start <= m && m < end {
				slot.Available = false
				slot.AppointmentID = a.ID
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *Service) Options() Options {
	return GetOptions()
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrAppointmentNotFound
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrReminderNotAllowed), errors.Is(err, ErrValidation):
		return err
	default:
		return fmt.Errorf("failed to %s appointment: %w", op, err)
	}
}

func validateCreate(req CreateAppointmentRequest, now time.Time) error {
	if strings.TrimSpace(req.PatientID) == "" {
		return fmt.Errorf("%w: patient is required", ErrValidation)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if _, err := query.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if req.Date < query.FormatDate(now) {
		return fmt.Errorf("%w: date cannot be in the past", ErrValidation)
	}
	if !contains(TimeSlots, req.Time) {
		return fmt.Errorf("%w: %q is not a bookable time slot", ErrValidation, req.Time)
	}
	if strings.TrimSpace(req.Type) == "" {
		return fmt.Errorf("%w: consultation type is required", ErrValidation)
	}
	if !contains(Doctors, req.Doctor) {
		return fmt.Errorf("%w: unknown doctor %q", ErrValidation, req.Doctor)
	}
	if req.Room != "" && !contains(Rooms, req.Room) {
		return fmt.Errorf("%w: unknown room %q", ErrValidation, req.Room)
	}
	if !contains(Durations, req.Duration) {
		return fmt.Errorf("%w: duration must be one of %v minutes", ErrValidation, Durations)
	}
	if !contains(Urgencies, req.Urgency) {
		return fmt.Errorf("%w: unknown urgency %q", ErrValidation, req.Urgency)
	}
	return nil
}
