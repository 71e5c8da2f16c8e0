package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

const entity = "payment"

type Service struct {
	repo      Repository
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	now       func() time.Time

	// invoices serializes invoice number allocation in Create
	invoices sync.Mutex
}

func NewService(repo Repository, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

func view(p Payment) PaymentView {
	return PaymentView{
		Payment:     p,
		PaidPercent: p.PaidRatio(),
		StatusBadge: badge.Ptr(StatusBadges, p.Status),
		MethodBadge: badge.Ptr(MethodBadges, p.Method),
	}
}

func views(items []Payment) []PaymentView {
	return lo.Map(items, func(p Payment, _ int) PaymentView { return view(p) })
}

func (s *Service) All(ctx context.Context) ([]Payment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return items, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	now := s.now()
	inPeriod, err := periodPredicate(filter.Period, now)
	if err != nil {
		return nil, err
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := query.Apply(all,
		query.Contains(filter.Search,
			func(p Payment) string { return p.PatientName },
			func(p Payment) string { return p.InvoiceNumber },
			func(p Payment) string { return p.Description },
		),
		query.Equals(filter.Status, func(p Payment) string { return string(p.Status) }),
		query.Equals(filter.Type, func(p Payment) string { return string(p.Type) }),
		inPeriod,
	)

	return &ListResult{
		Payments: views(matched),
		Stats:    ComputeStats(all, now),
		Total:    len(matched),
	}, nil
}

// periodPredicate matches payments dated within the named calendar period
// containing now. Weeks start on Monday.
func periodPredicate(period string, now time.Time) (query.Predicate[Payment], error) {
	if query.IsAll(period) {
		return nil, nil
	}

	var from, to time.Time
	switch strings.ToLower(strings.TrimSpace(period)) {
	case PeriodDay:
		from, to = now, now
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		from = now.AddDate(0, 0, -offset)
		to = from.AddDate(0, 0, 6)
	case PeriodMonth:
		from = query.StartOfMonth(now)
		to = from.AddDate(0, 1, -1)
	case PeriodYear:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		to = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	default:
		return nil, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}

	return func(p Payment) bool { return query.InRange(p.Date, from, to) }, nil
}

// ComputeStats derives the finance dashboard figures from a ledger
func ComputeStats(payments []Payment, now time.Time) FinancialStats {
	paid := func(p Payment) float64 { return p.AmountPaid }
	remaining := func(p Payment) float64 { return p.Remaining }
	monthStart := query.StartOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, -1)

	total := query.Sum(payments, paid)
	due := query.Sum(payments, func(p Payment) float64 { return p.AmountDue })

	return FinancialStats{
		TotalRevenue: total,
		TodayRevenue: query.Sum(query.Apply(payments, query.Where(func(p Payment) bool {
			return query.SameDay(p.Date, now)
		})), paid),
		MonthRevenue: query.Sum(query.Apply(payments, query.Where(func(p Payment) bool {
			return query.InRange(p.Date, monthStart, monthEnd)
		})), paid),
		Pending: query.Sum(query.Apply(payments,
			query.In(func(p Payment) string { return string(p.Status) }, string(StatusPending), string(StatusPartial)),
		), remaining),
		Overdue: query.Sum(query.Apply(payments,
			query.Equals(string(StatusOverdue), func(p Payment) string { return string(p.Status) }),
		), remaining),
		Count:          len(payments),
		CollectionRate: query.Percent(total, due),
		AveragePayment: query.Average(total, len(payments)),
	}
}

func (s *Service) Get(ctx context.Context, id string) (*PaymentView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "get")
	}
	v := view(p)
	return &v, nil
}

func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error) {
	now := s.now()
	if req.Date == "" {
		req.Date = query.FormatDate(now)
	}
	if req.DueDate == "" {
		req.DueDate = req.Date
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	p := Payment{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		PatientName:   strings.TrimSpace(req.PatientName),
		PatientPhone:  strings.TrimSpace(req.PatientPhone),
		Amount:        req.AmountDue,
		AmountDue:     req.AmountDue,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Method:        req.Method,
		Status:        DeriveStatus(req.AmountDue, req.AmountPaid),
		Type:          req.Type,
		Description:   strings.TrimSpace(req.Description),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	p.SetPaid(req.AmountPaid)

	s.invoices.Lock()
	defer s.invoices.Unlock()

	unlock, err := store.Lock(ctx, s.repo, "invoices")
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoices: %w", err)
	}
	defer unlock()

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if p.InvoiceNumber == "" {
		p.InvoiceNumber = NextInvoiceNumber(all, now.Year())
	} else {
		for _, existing := range all {
			if existing.InvoiceNumber == p.InvoiceNumber {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateInvoice, p.InvoiceNumber)
			}
		}
	}

	created, err := s.repo.Create(ctx, p)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateInvoice, p.InvoiceNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.metrics.RecordOperation(ctx, entity, "create")
	messaging.Emit(ctx, s.publisher, messaging.EventPaymentCreated, messaging.PaymentCreatedData{
		PaymentID:     created.ID,
		InvoiceNumber: created.InvoiceNumber,
		PatientID:     created.PatientID,
		AmountDue:     created.AmountDue,
		AmountPaid:    created.AmountPaid,
		Status:        string(created.Status),
	})

	v := view(created)
	return &v, nil
}

// NextInvoiceNumber allocates F-<year>-NNN after the highest number already
// used that year
func NextInvoiceNumber(existing []Payment, year int) string {
	prefix := fmt.Sprintf("F-%d-", year)
	highest := 0
	for _, p := range existing {
		if !strings.HasPrefix(p.InvoiceNumber, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(p.InvoiceNumber, prefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// UpdateStatus sets the status and optionally the paid amount in one
// mutation, recomputing the remaining amount
func (s *Service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error) {
	if _, ok := StatusBadges[req.Status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if req.AmountPaid != nil && *req.AmountPaid < 0 {
		return nil, fmt.Errorf("%w: paid amount cannot be negative", ErrValidation)
	}

	now := s.now()
	var previous Status
	updated, err := s.repo.Update(ctx, id, func(p *Payment) error {
		previous = p.Status
		p.Status = req.Status
		if req.AmountPaid != nil {
			p.SetPaid(*req.AmountPaid)
		}
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err, "update status of")
	}

	s.metrics.RecordOperation(ctx, entity, "update")
	if previous != updated.Status {
		s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(updated.Status))
		messaging.Emit(ctx, s.publisher, messaging.EventPaymentStatusChanged, messaging.StatusChangedData{
			EntityID:  updated.ID,
			PatientID: updated.PatientID,
			OldStatus: string(previous),
			NewStatus: string(updated.Status),
			ChangedAt: now.UTC(),
		})
	}

	v := view(updated)
	return &v, nil
}

func (s *Service) Stats(ctx context.Context) (*FinancialStats, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(all, s.now())
	return &stats, nil
}

// Outstanding lists payments with an amount still to collect
func (s *Service) Outstanding(ctx context.Context) ([]PaymentView, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return views(query.Apply(all, query.Where(func(p Payment) bool { return p.Remaining > 0 }))), nil
}

// Breakdown reports how many payments use each method and how much was
// collected per service type relative to the best-selling type
func (s *Service) Breakdown(ctx context.Context) (*Breakdown, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Breakdown{
		Methods: MethodBreakdown(all),
		Types:   TypeBreakdown(all),
	}, nil
}

func MethodBreakdown(payments []Payment) []query.Share {
	return query.Breakdown(Methods, query.CountBy(payments, func(p Payment) Method { return p.Method }))
}

func TypeBreakdown(payments []Payment) []query.Share {
	return query.RelativeShares(Types, query.SumBy(payments,
		func(p Payment) Type { return p.Type },
		func(p Payment) float64 { return p.AmountPaid },
	))
}

// MarkOverdue flags every pending or partial payment whose due date has
// passed with money still owed. Returns how many were flagged.
func (s *Service) MarkOverdue(ctx context.Context) (int, error) {
	now := s.now()
	today := query.FormatDate(now)

	all, err := s.All(ctx)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, candidate := range all {
		if !isOverdue(candidate, today) {
			continue
		}

		var previous Status
		updated, err := s.repo.Update(ctx, candidate.ID, func(p *Payment) error {
			if !isOverdue(*p, today) {
				return errSkip
			}
			previous = p.Status
			p.Status = StatusOverdue
			p.UpdatedAt = now.UTC()
			return nil
		})
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			return flagged, fmt.Errorf("failed to mark payment %s overdue: %w", candidate.ID, err)
		}

		flagged++
		s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(StatusOverdue))
		messaging.Emit(ctx, s.publisher, messaging.EventPaymentOverdue, messaging.PaymentOverdueData{
			PaymentID:     updated.ID,
			InvoiceNumber: updated.InvoiceNumber,
			PatientID:     updated.PatientID,
			Remaining:     updated.Remaining,
			DueDate:       updated.DueDate,
		})
	}

	s.metrics.RecordOverdue(ctx, flagged)
	return flagged, nil
}

// errSkip aborts an Update whose record changed since it was listed
var errSkip = errors.New("skip")

func isOverdue(p Payment, today string) bool {
	if p.Status != StatusPending && p.Status != StatusPartial {
		return false
	}
	if _, err := query.ParseDate(p.DueDate); err != nil {
		return false
	}
	return p.DueDate < today && p.Remaining > 0
}

// SendReminder records that the patient was reminded of an unpaid balance
func (s *Service) SendReminder(ctx context.Context, id string) (*PaymentView, error) {
	now := s.now()
	updated, err := s.repo.Update(ctx, id, func(p *Payment) error {
		if p.Remaining <= 0 || p.Status == StatusCancelled || p.Status == StatusPaid {
			return ErrReminderNotAllowed
		}
		p.ReminderSent = true
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err, "send reminder for")
	}

	s.metrics.RecordOperation(ctx, entity, "reminder")
	messaging.Emit(ctx, s.publisher, messaging.EventPaymentReminderSent, messaging.ReminderSentData{
		EntityID:  updated.ID,
		PatientID: updated.PatientID,
		Phone:     updated.PatientPhone,
		SentAt:    now.UTC(),
	})

	v := view(updated)
	return &v, nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrReminderNotAllowed):
		return err
	default:
		return fmt.Errorf("failed to %s payment: %w", op, err)
	}
}

func validateCreate(req CreatePaymentRequest) error {
	if strings.TrimSpace(req.PatientID) == "" {
		return fmt.Errorf("%w: patient is required", ErrValidation)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if req.AmountDue <= 0 {
		return fmt.Errorf("%w: amount due must be greater than zero", ErrValidation)
	}
	if req.AmountPaid < 0 {
		return fmt.Errorf("%w: paid amount cannot be negative", ErrValidation)
	}
	if req.AmountPaid > req.AmountDue {
		return fmt.Errorf("%w: paid amount exceeds amount due", ErrValidation)
	}
	if _, ok := MethodBadges[req.Method]; !ok {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}
	if _, ok := typeLabels[req.Type]; !ok {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, req.Type)
	}
	if _, err := query.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := query.ParseDate(req.DueDate); err != nil {
		return fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrValidation)
	}
	if req.DueDate < req.Date {
		return fmt.Errorf("%w: due date is before the payment date", ErrValidation)
	}
	return nil
}
