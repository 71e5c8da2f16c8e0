package dental

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

const (
	entity = "dental"

	defaultSessionMinutes = 30
)

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

func view(p Problem) ProblemView {
	t, _ := LookupTooth(p.Tooth)
	return ProblemView{
		Problem:       p,
		ToothName:     t.Name,
		Remaining:     p.Remaining(),
		SeverityBadge: badge.Ptr(SeverityBadges, p.Severity),
		StatusBadge:   badge.Ptr(ProblemStatusBadges, p.Status),
	}
}

func (s *Service) All(ctx context.Context) ([]Problem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tooth problems: %w", err)
	}
	return items, nil
}

func (s *Service) ListProblems(ctx context.Context, filter ProblemFilter) (*ListResult, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := query.Apply(all,
		query.Equals(filter.PatientID, func(p Problem) string { return p.PatientID }),
		query.Equals(filter.Tooth, func(p Problem) string { return strconv.Itoa(p.Tooth) }),
		query.Equals(filter.Severity, func(p Problem) string { return string(p.Severity) }),
		query.Equals(filter.Status, func(p Problem) string { return string(p.Status) }),
		query.Contains(filter.Search,
			func(p Problem) string { return p.PatientName },
			func(p Problem) string { return p.Problem },
			func(p Problem) string { return p.Treatment },
		),
	)

	out := lo.Map(matched, func(p Problem, _ int) ProblemView { return view(p) })
	return &ListResult{Problems: out, Total: len(out)}, nil
}

func (s *Service) GetProblem(ctx context.Context, id string) (*ProblemView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "get")
	}
	v := view(p)
	return &v, nil
}

func (s *Service) CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemView, error) {
	if err := validateProblem(req); err != nil {
		return nil, err
	}

	now := s.now()
	today := query.FormatDate(now)
	p := Problem{
		ID:            uuid.New().String(),
		Tooth:         req.Tooth,
		PatientID:     req.PatientID,
		PatientName:   strings.TrimSpace(req.PatientName),
		Problem:       strings.TrimSpace(req.Problem),
		Severity:      req.Severity,
		Treatment:     strings.TrimSpace(req.Treatment),
		Status:        ProblemPending,
		Sessions:      []Session{},
		DateCreated:   today,
		DateUpdated:   today,
		Notes:         strings.TrimSpace(req.Notes),
		EstimatedCost: req.EstimatedCost,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create tooth problem: %w", err)
	}

	s.metrics.RecordOperation(ctx, entity, "create")
	messaging.Emit(ctx, s.publisher, messaging.EventDentalProblemCreated, messaging.DentalProblemCreatedData{
		ProblemID: created.ID,
		PatientID: created.PatientID,
		Tooth:     created.Tooth,
		Severity:  string(created.Severity),
	})

	v := view(created)
	return &v, nil
}

// UpdateProblemStatus follows en_attente → en_cours → termine; open
// problems can be cancelled
func (s *Service) UpdateProblemStatus(ctx context.Context, id string, req UpdateProblemStatusRequest) (*ProblemView, error) {
	if _, ok := ProblemStatusBadges[req.Status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	now := s.now()
	var previous ProblemStatus
	updated, err := s.repo.Update(ctx, id, func(p *Problem) error {
		if !CanTransition(p.Status, req.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.Status, req.Status)
		}
		previous = p.Status
		p.Status = req.Status
		touch(p, now)
		return nil
	})
	if err != nil {
		return nil, translate(err, "update status of")
	}

	s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(updated.Status))
	messaging.Emit(ctx, s.publisher, messaging.EventDentalProblemStatusChanged, messaging.StatusChangedData{
		EntityID:  updated.ID,
		PatientID: updated.PatientID,
		OldStatus: string(previous),
		NewStatus: string(updated.Status),
		ChangedAt: now.UTC(),
	})

	v := view(updated)
	return &v, nil
}

// AddSession schedules or records a treatment session and adds its cost to
// the problem
func (s *Service) AddSession(ctx context.Context, problemID string, req AddSessionRequest) (*ProblemView, error) {
	if req.Duration == 0 {
		req.Duration = defaultSessionMinutes
	}
	if req.Status == "" {
		req.Status = SessionScheduled
	}
	if err := validateSession(req); err != nil {
		return nil, err
	}

	now := s.now()
	session := Session{
		ID:        uuid.New().String(),
		Date:      req.Date,
		Duration:  req.Duration,
		Treatment: strings.TrimSpace(req.Treatment),
		Notes:     strings.TrimSpace(req.Notes),
		Status:    req.Status,
		Doctor:    strings.TrimSpace(req.Doctor),
		Cost:      req.Cost,
	}

	updated, err := s.repo.Update(ctx, problemID, func(p *Problem) error {
		if p.Status.Closed() {
			return fmt.Errorf("%w: %s", ErrProblemClosed, p.Status)
		}
		if session.Treatment == "" {
			session.Treatment = p.Treatment
		}
		p.Sessions = append(p.Sessions, session)
		p.Cost += session.Cost
		touch(p, now)
		return nil
	})
	if err != nil {
		return nil, translate(err, "add session to")
	}

	s.metrics.RecordOperation(ctx, entity, "session")
	messaging.Emit(ctx, s.publisher, messaging.EventDentalSessionAdded, messaging.DentalSessionAddedData{
		ProblemID: updated.ID,
		SessionID: session.ID,
		Date:      session.Date,
		Cost:      session.Cost,
	})

	v := view(updated)
	return &v, nil
}

// UpdateSessionStatus completes or cancels a scheduled session. A cancelled
// session no longer counts toward the problem cost.
func (s *Service) UpdateSessionStatus(ctx context.Context, problemID, sessionID string, req UpdateSessionStatusRequest) (*ProblemView, error) {
	if req.Status != SessionDone && req.Status != SessionCancelled {
		return nil, fmt.Errorf("%w: session status must be %s or %s", ErrValidation, SessionDone, SessionCancelled)
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, problemID, func(p *Problem) error {
		for i := range p.Sessions {
			session := &p.Sessions[i]
			if session.ID != sessionID {
				continue
			}
			if session.Status != SessionScheduled {
				return fmt.Errorf("%w: session is already %s", ErrInvalidTransition, session.Status)
			}
			session.Status = req.Status
			if req.Status == SessionCancelled {
				p.Cost -= session.Cost
			}
			touch(p, now)
			return nil
		}
		return ErrSessionNotFound
	})
	if err != nil {
		return nil, translate(err, "update session of")
	}

	s.metrics.RecordOperation(ctx, entity, "update")
	v := view(updated)
	return &v, nil
}

func (s *Service) RecordPayment(ctx context.Context, problemID string, req RecordPaymentRequest) (*ProblemView, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	now := s.now()
	updated, err := s.repo.Update(ctx, problemID, func(p *Problem) error {
		p.Paid += req.Amount
		touch(p, now)
		return nil
	})
	if err != nil {
		return nil, translate(err, "record payment for")
	}

	s.metrics.RecordOperation(ctx, entity, "payment")
	v := view(updated)
	return &v, nil
}

// Chart renders every adult tooth for one patient. A tooth's status is the
// worst of its problems: urgent, then severe, then under treatment.
func (s *Service) Chart(ctx context.Context, patientID string) (*Chart, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, fmt.Errorf("%w: patient is required", ErrValidation)
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	problems := query.Apply(all, query.Where(func(p Problem) bool { return p.PatientID == patientID }))

	byTooth := make(map[int][]Problem)
	for _, p := range problems {
		byTooth[p.Tooth] = append(byTooth[p.Tooth], p)
	}

	teeth := Teeth()
	out := make([]ChartTooth, 0, len(teeth))
	for _, t := range teeth {
		status := ToothStatus(byTooth[t.Number])
		out = append(out, ChartTooth{
			Tooth:    t,
			Status:   status,
			Badge:    ChartBadges[status],
			Problems: len(byTooth[t.Number]),
		})
	}

	return &Chart{
		PatientID: patientID,
		Teeth:     out,
		Summary:   Summarize(problems),
	}, nil
}

func ToothStatus(problems []Problem) ChartStatus {
	if len(problems) == 0 {
		return ChartHealthy
	}
	has := func(cond func(Problem) bool) bool { return query.Count(problems, cond) > 0 }
	switch {
	case has(func(p Problem) bool { return p.Severity == SeverityUrgent }):
		return ChartUrgent
	case has(func(p Problem) bool { return p.Severity == SeveritySevere }):
		return ChartSevere
	case has(func(p Problem) bool { return p.Status == ProblemInProgress }):
		return ChartTreatment
	default:
		return ChartProblem
	}
}

// Summarize totals one patient's problems
func Summarize(problems []Problem) PatientSummary {
	cost := query.Sum(problems, func(p Problem) float64 { return p.Cost })
	paid := query.Sum(problems, func(p Problem) float64 { return p.Paid })
	sessions := 0
	for _, p := range problems {
		sessions += len(p.Sessions)
	}
	return PatientSummary{
		Problems:  len(problems),
		Active:    query.Count(problems, func(p Problem) bool { return p.Status == ProblemInProgress }),
		Completed: query.Count(problems, func(p Problem) bool { return p.Status == ProblemDone }),
		Sessions:  sessions,
		Cost:      cost,
		Paid:      paid,
		Remaining: cost - paid,
	}
}

func touch(p *Problem, now time.Time) {
	p.DateUpdated = query.FormatDate(now)
	p.UpdatedAt = now.UTC()
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrProblemNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrProblemClosed),
		errors.Is(err, ErrSessionNotFound):
		return err
	default:
		return fmt.Errorf("failed to %s tooth problem: %w", op, err)
	}
}

func validateProblem(req CreateProblemRequest) error {
	if strings.TrimSpace(req.PatientID) == "" {
		return fmt.Errorf("%w: patient is required", ErrValidation)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if _, ok := LookupTooth(req.Tooth); !ok {
		return fmt.Errorf("%w: %d is not an adult FDI tooth number", ErrValidation, req.Tooth)
	}
	if strings.TrimSpace(req.Problem) == "" {
		return fmt.Errorf("%w: problem is required", ErrValidation)
	}
	if _, ok := SeverityBadges[req.Severity]; !ok {
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, req.Severity)
	}
	if req.EstimatedCost < 0 {
		return fmt.Errorf("%w: estimated cost cannot be negative", ErrValidation)
	}
	return nil
}

func validateSession(req AddSessionRequest) error {
	if _, err := query.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if req.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidation)
	}
	if req.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	if strings.TrimSpace(req.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	}
	if req.Status != SessionScheduled && req.Status != SessionDone {
		return fmt.Errorf("%w: new sessions must be %s or %s", ErrValidation, SessionScheduled, SessionDone)
	}
	return nil
}
