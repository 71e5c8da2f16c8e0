package patient

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

const entity = "patient"

type Service struct {
	repo      Repository
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	now       func() time.Time
}

func NewService(repo Repository, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *Service) view(p Patient) *PatientView {
	return &PatientView{
		Patient: p,
		Age:     p.Age(s.now()),
		Badge:   badge.Ptr(StatusBadges, p.Status),
	}
}

// All returns every patient in insertion order
func (s *Service) All(ctx context.Context) ([]Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	patients, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := query.Apply(patients,
		query.Contains(filter.Search,
			func(p Patient) string { return p.LastName },
			func(p Patient) string { return p.FirstName },
			func(p Patient) string { return p.Phone },
		),
		query.Equals(filter.Status, func(p Patient) string { return string(p.Status) }),
	)

	views := lo.Map(matched, func(p Patient, _ int) PatientView { return *s.view(p) })

	return &ListResult{
		Patients: views,
		Stats:    computeStats(patients),
		Total:    len(views),
	}, nil
}

func computeStats(patients []Patient) Stats {
	counts := query.CountBy(patients, func(p Patient) Status { return p.Status })
	total := len(patients)
	return Stats{
		Total:         total,
		Active:        counts[StatusActive],
		Inactive:      counts[StatusInactive],
		ActivePercent: query.Percent(float64(counts[StatusActive]), float64(total)),
	}
}

func (s *Service) Get(ctx context.Context, id string) (*PatientView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get")
	}
	return s.view(p), nil
}

func (s *Service) Create(ctx context.Context, req CreatePatientRequest) (*PatientView, error) {
	now := s.now()
	if err := validateCreate(req, now); err != nil {
		return nil, err
	}

	allergies := cleanList(req.Allergies)
	p := Patient{
		ID:               uuid.New().String(),
		LastName:         strings.TrimSpace(req.LastName),
		FirstName:        strings.TrimSpace(req.FirstName),
		BirthDate:        req.BirthDate,
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		Address:          strings.TrimSpace(req.Address),
		Sex:              req.Sex,
		BloodType:        req.BloodType,
		RegistrationDate: query.FormatDate(now),
		Status:           StatusActive,
		Allergies:        allergies,
		MedicalHistory:   strings.TrimSpace(req.MedicalHistory),
		Treatments:       []Treatment{},
		Sessions:         []Session{},
		Payments:         []PaymentEntry{},
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.metrics.RecordOperation(ctx, entity, "create")
	messaging.Emit(ctx, s.publisher, messaging.EventPatientCreated, messaging.PatientCreatedData{
		PatientID: created.ID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Phone:     created.Phone,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
	})

	return s.view(created), nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdatePatientRequest) (*PatientView, error) {
	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(p *Patient) error {
		if err := applyUpdate(p, req, now); err != nil {
			return err
		}
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "update")
	}

	s.metrics.RecordOperation(ctx, entity, "update")
	s.emitUpdated(ctx, updated, "profile")
	return s.view(updated), nil
}

// SetStatus activates or deactivates a patient. Setting the current status
// again is a no-op and publishes nothing.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*PatientView, error) {
	if _, ok := StatusBadges[status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	now := s.now()
	var previous Status
	updated, err := s.repo.Update(ctx, id, func(p *Patient) error {
		previous = p.Status
		if p.Status == status {
			return nil
		}
		p.Status = status
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "update status of")
	}

	if previous != status {
		s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(status))
		messaging.Emit(ctx, s.publisher, messaging.EventPatientStatusChanged, messaging.StatusChangedData{
			EntityID:  updated.ID,
			PatientID: updated.ID,
			OldStatus: string(previous),
			NewStatus: string(status),
			ChangedAt: now.UTC(),
		})
	}
	return s.view(updated), nil
}

func (s *Service) AddTreatment(ctx context.Context, id string, req AddTreatmentRequest) (*PatientView, error) {
	if req.Status == "" {
		req.Status = TreatmentOngoing
	}
	if err := validateTreatment(req); err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(p *Patient) error {
		p.Treatments = append(p.Treatments, Treatment{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Status:      req.Status,
			Doctor:      req.Doctor,
			Notes:       strings.TrimSpace(req.Notes),
		})
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "add treatment to")
	}

	s.metrics.RecordOperation(ctx, "treatment", "create")
	s.emitUpdated(ctx, updated, "treatment")
	return s.view(updated), nil
}

func (s *Service) AddSession(ctx context.Context, id string, req AddSessionRequest) (*PatientView, error) {
	if req.Status == "" {
		req.Status = SessionScheduled
	}
	if req.Duration == 0 {
		req.Duration = 30
	}
	if err := validateSession(req); err != nil {
		return nil, err
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(p *Patient) error {
		p.Sessions = append(p.Sessions, Session{
			ID:       uuid.New().String(),
			Date:     req.Date,
			Time:     req.Time,
			Type:     strings.TrimSpace(req.Type),
			Duration: req.Duration,
			Doctor:   req.Doctor,
			Notes:    strings.TrimSpace(req.Notes),
			Status:   req.Status,
		})
		if req.Status == SessionCompleted && req.Date > p.LastVisit {
			p.LastVisit = req.Date
		}
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "add session to")
	}

	s.metrics.RecordOperation(ctx, "session", "create")
	s.emitUpdated(ctx, updated, "session")
	return s.view(updated), nil
}

func (s *Service) AddPayment(ctx context.Context, id string, req AddPaymentRequest) (*PatientView, error) {
	now := s.now()
	if req.Date == "" {
		req.Date = query.FormatDate(now)
	}
	if req.Status == "" {
		req.Status = PaymentPaid
	}
	if err := validatePayment(req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(p *Patient) error {
		p.Payments = append(p.Payments, PaymentEntry{
			ID:          uuid.New().String(),
			Date:        req.Date,
			Amount:      req.Amount,
			Method:      req.Method,
			Description: strings.TrimSpace(req.Description),
			Status:      req.Status,
		})
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "add payment to")
	}

	s.metrics.RecordOperation(ctx, "patient_payment", "create")
	s.emitUpdated(ctx, updated, "payment")
	return s.view(updated), nil
}

func (s *Service) emitUpdated(ctx context.Context, p Patient, change string) {
	messaging.Emit(ctx, s.publisher, messaging.EventPatientUpdated, messaging.PatientUpdatedData{
		PatientID: p.ID,
		Change:    change,
		UpdatedAt: p.UpdatedAt,
	})
}

func (s *Service) translate(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrPatientNotFound
	case errors.Is(err, ErrValidation):
		return err
	default:
		return fmt.Errorf("failed to %s patient: %w", op, err)
	}
}

func validateCreate(req CreatePatientRequest, now time.Time) error {
	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if err := validateBirthDate(req.BirthDate, now); err != nil {
		return err
	}
	if err := validateSex(req.Sex); err != nil {
		return err
	}
	if err := validateBloodType(req.BloodType); err != nil {
		return err
	}
	return validateEmail(req.Email)
}

func applyUpdate(p *Patient, req UpdatePatientRequest, now time.Time) error {
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return fmt.Errorf("%w: last name cannot be empty", ErrValidation)
		}
		p.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return fmt.Errorf("%w: first name cannot be empty", ErrValidation)
		}
		p.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			return fmt.Errorf("%w: phone cannot be empty", ErrValidation)
		}
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.BirthDate != nil {
		if err := validateBirthDate(*req.BirthDate, now); err != nil {
			return err
		}
		p.BirthDate = *req.BirthDate
	}
	if req.Sex != nil {
		if err := validateSex(*req.Sex); err != nil {
			return err
		}
		p.Sex = *req.Sex
	}
	if req.BloodType != nil {
		if err := validateBloodType(*req.BloodType); err != nil {
			return err
		}
		p.BloodType = *req.BloodType
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return err
		}
		p.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		p.Address = strings.TrimSpace(*req.Address)
	}
	if req.Allergies != nil {
		p.Allergies = cleanList(*req.Allergies)
	}
	if req.MedicalHistory != nil {
		p.MedicalHistory = strings.TrimSpace(*req.MedicalHistory)
	}
	if req.NextVisit != nil {
		if *req.NextVisit != "" {
			if _, err := query.ParseDate(*req.NextVisit); err != nil {
				return fmt.Errorf("%w: next visit must be a YYYY-MM-DD date", ErrValidation)
			}
		}
		p.NextVisit = *req.NextVisit
	}
	return nil
}

func validateBirthDate(value string, now time.Time) error {
	if _, err := query.ParseDate(value); err != nil {
		return fmt.Errorf("%w: birth date must be a YYYY-MM-DD date", ErrValidation)
	}
	if value > query.FormatDate(now) {
		return fmt.Errorf("%w: birth date cannot be in the future", ErrValidation)
	}
	return nil
}

func validateSex(sex Sex) error {
	if sex != SexMale && sex != SexFemale {
		return fmt.Errorf("%w: sex must be M or F", ErrValidation)
	}
	return nil
}

// validateBloodType accepts an empty value; blood type is optional
func validateBloodType(value string) error {
	if value == "" {
		return nil
	}
	for _, bt := range BloodTypes {
		if bt == value {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown blood type %q", ErrValidation, value)
}

func validateEmail(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, value)
	}
	return nil
}

func validateTreatment(req AddTreatmentRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: treatment name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	}
	start, err := query.ParseDate(req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date must be a YYYY-MM-DD date", ErrValidation)
	}
	if req.EndDate != "" {
		end, err := query.ParseDate(req.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end date must be a YYYY-MM-DD date", ErrValidation)
		}
		if end.Before(start) {
			return fmt.Errorf("%w: end date is before start date", ErrValidation)
		}
	}
	if _, ok := TreatmentBadges[req.Status]; !ok {
		return fmt.Errorf("%w: unknown treatment status %q", ErrValidation, req.Status)
	}
	return nil
}

func validateSession(req AddSessionRequest) error {
	if _, err := query.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: session date must be a YYYY-MM-DD date", ErrValidation)
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return fmt.Errorf("%w: session time must be HH:MM", ErrValidation)
	}
	if strings.TrimSpace(req.Type) == "" {
		return fmt.Errorf("%w: session type is required", ErrValidation)
	}
	if strings.TrimSpace(req.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	}
	if req.Duration < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if _, ok := SessionBadges[req.Status]; !ok {
		return fmt.Errorf("%w: unknown session status %q", ErrValidation, req.Status)
	}
	return nil
}

func validatePayment(req AddPaymentRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if _, err := query.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: payment date must be a YYYY-MM-DD date", ErrValidation)
	}
	valid := false
	for _, m := range PaymentMethods {
		if m == req.Method {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}
	if _, ok := PaymentBadges[req.Status]; !ok {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, req.Status)
	}
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
