package prescription

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/store"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

const entity = "prescription"

type Service struct {
	repo      Repository
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	now       func() time.Time

	// numbering serializes ORD number allocation in Create
	numbering sync.Mutex
}

func NewService(repo Repository, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

func view(p Prescription) PrescriptionView {
	lines := make([]PrescribedLine, 0, len(p.Medications))
	for _, pm := range p.Medications {
		lines = append(lines, PrescribedLine{
			MedicationID:  pm.ID,
			Name:          pm.Name,
			Category:      pm.Category,
			CategoryBadge: CategoryBadge(pm.Category),
			Effective:     pm.Effective(),
		})
	}
	return PrescriptionView{
		Prescription: p,
		StatusBadge:  badge.Ptr(StatusBadges, p.Status),
		Lines:        lines,
	}
}

func (s *Service) All(ctx context.Context) ([]Prescription, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
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
			func(p Prescription) string { return p.PatientName },
			func(p Prescription) string { return p.ID },
			func(p Prescription) string { return p.Diagnosis },
		),
		query.Equals(filter.Status, func(p Prescription) string { return string(p.Status) }),
	)

	out := lo.Map(matched, func(p Prescription, _ int) PrescriptionView { return view(p) })

	return &ListResult{
		Prescriptions: out,
		Stats:         computeStats(all),
		Total:         len(out),
	}, nil
}

func computeStats(items []Prescription) Stats {
	counts := query.CountBy(items, func(p Prescription) Status { return p.Status })
	byStatus := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		byStatus[st] = counts[st]
	}
	return Stats{Total: len(items), ByStatus: byStatus}
}

func (s *Service) Get(ctx context.Context, id string) (*PrescriptionView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "get")
	}
	v := view(p)
	return &v, nil
}

// Medications searches the catalog
func (s *Service) Medications(ctx context.Context, term, category string) ([]CatalogEntry, error) {
	found := SearchCatalog(term, category)
	return lo.Map(found, func(m Medication, _ int) CatalogEntry {
		return CatalogEntry{Medication: m, CategoryBadge: CategoryBadge(m.Category)}
	}), nil
}

func (s *Service) Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionView, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := s.now()

	s.numbering.Lock()
	defer s.numbering.Unlock()

	unlock, err := store.Lock(ctx, s.repo, "numbering")
	if err != nil {
		return nil, fmt.Errorf("failed to lock prescription numbering: %w", err)
	}
	defer unlock()

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	id := NextPrescriptionID(all, now.Year())

	meds := make([]PrescribedMedication, 0, len(req.Medications))
	ids := make([]string, 0, len(req.Medications))
	for _, order := range req.Medications {
		m, _ := LookupMedication(order.MedicationID)
		meds = append(meds, PrescribedMedication{
			Medication:         m,
			PrescriptionID:     id,
			CustomDosage:       strings.TrimSpace(order.CustomDosage),
			CustomFrequency:    strings.TrimSpace(order.CustomFrequency),
			CustomDuration:     strings.TrimSpace(order.CustomDuration),
			CustomInstructions: strings.TrimSpace(order.CustomInstructions),
		})
		ids = append(ids, m.ID)
	}

	p := Prescription{
		ID:            id,
		PatientID:     req.PatientID,
		PatientName:   strings.TrimSpace(req.PatientName),
		PatientAge:    req.PatientAge,
		PatientWeight: req.PatientWeight,
		Date:          query.FormatDate(now),
		Doctor:        strings.TrimSpace(req.Doctor),
		Medications:   meds,
		Diagnosis:     strings.TrimSpace(req.Diagnosis),
		Symptoms:      strings.TrimSpace(req.Symptoms),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        StatusDraft,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	s.metrics.RecordOperation(ctx, entity, "create")
	messaging.Emit(ctx, s.publisher, messaging.EventPrescriptionCreated, messaging.PrescriptionCreatedData{
		PrescriptionID: created.ID,
		PatientID:      created.PatientID,
		Doctor:         created.Doctor,
		MedicationIDs:  ids,
	})

	v := view(created)
	return &v, nil
}

// NextPrescriptionID allocates ORD-<year>-NNN after the highest number
// already used that year
func NextPrescriptionID(existing []Prescription, year int) string {
	prefix := fmt.Sprintf("ORD-%d-", year)
	highest := 0
	for _, p := range existing {
		if !strings.HasPrefix(p.ID, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(p.ID, prefix))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// UpdateStatus moves a prescription along brouillon → envoyee → delivree.
// Drafts and sent prescriptions can be cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*PrescriptionView, error) {
	if _, ok := StatusBadges[req.Status]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	now := s.now()
	pharmacy := strings.TrimSpace(req.Pharmacy)
	var previous Status
	updated, err := s.repo.Update(ctx, id, func(p *Prescription) error {
		if !CanTransition(p.Status, req.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.Status, req.Status)
		}
		if pharmacy != "" {
			p.Pharmacy = pharmacy
		}
		if req.Status == StatusDelivered {
			if p.Pharmacy == "" {
				return fmt.Errorf("%w: a pharmacy is required to deliver", ErrValidation)
			}
			p.DeliveryDate = query.FormatDate(now)
		}
		previous = p.Status
		p.Status = req.Status
		p.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		return nil, translate(err, "update status of")
	}

	s.metrics.RecordOperation(ctx, entity, "update")
	s.metrics.RecordStatusTransition(ctx, entity, string(previous), string(updated.Status))
	messaging.Emit(ctx, s.publisher, messaging.EventPrescriptionStatusChanged, messaging.StatusChangedData{
		EntityID:  updated.ID,
		PatientID: updated.PatientID,
		OldStatus: string(previous),
		NewStatus: string(updated.Status),
		ChangedAt: now.UTC(),
	})

	v := view(updated)
	return &v, nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrPrescriptionNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidTransition):
		return err
	default:
		return fmt.Errorf("failed to %s prescription: %w", op, err)
	}
}

func validateCreate(req CreatePrescriptionRequest) error {
	if strings.TrimSpace(req.PatientID) == "" {
		return fmt.Errorf("%w: patient is required", ErrValidation)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrValidation)
	}
	if req.PatientAge < 0 {
		return fmt.Errorf("%w: patient age cannot be negative", ErrValidation)
	}
	if req.PatientWeight < 0 {
		return fmt.Errorf("%w: patient weight cannot be negative", ErrValidation)
	}
	if strings.TrimSpace(req.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", ErrValidation)
	}
	if strings.TrimSpace(req.Diagnosis) == "" {
		return fmt.Errorf("%w: diagnosis is required", ErrValidation)
	}
	if len(req.Medications) == 0 {
		return fmt.Errorf("%w: at least one medication is required", ErrValidation)
	}

	seen := make(map[string]bool, len(req.Medications))
	for _, order := range req.Medications {
		if _, ok := LookupMedication(order.MedicationID); !ok {
			return fmt.Errorf("%w: unknown medication %q", ErrValidation, order.MedicationID)
		}
		if seen[order.MedicationID] {
			return fmt.Errorf("%w: medication %q prescribed twice", ErrValidation, order.MedicationID)
		}
		seen[order.MedicationID] = true
	}
	return nil
}
