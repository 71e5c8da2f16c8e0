package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

const (
	entity = "report"

	upcomingLimit = 5
)

var AgeGroups = []string{"0-18", "19-35", "36-50", "51-65", "65+"}

// The report service only reads; any domain service satisfies these
type PatientLister interface {
	All(ctx context.Context) ([]patient.Patient, error)
}

type AppointmentLister interface {
	All(ctx context.Context) ([]appointment.Appointment, error)
}

type PaymentLister interface {
	All(ctx context.Context) ([]payment.Payment, error)
}

type Service struct {
	patients     PatientLister
	appointments AppointmentLister
	payments     PaymentLister
	metrics      *telemetry.Metrics
	now          func() time.Time
}

func NewService(patients PatientLister, appointments AppointmentLister, payments PaymentLister, metrics *telemetry.Metrics) *Service {
	return &Service{
		patients:     patients,
		appointments: appointments,
		payments:     payments,
		metrics:      metrics,
		now:          time.Now,
	}
}

type snapshot struct {
	patients     []patient.Patient
	appointments []appointment.Appointment
	payments     []payment.Payment
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	patients, err := s.patients.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	appointments, err := s.appointments.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	payments, err := s.payments.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return &snapshot{patients: patients, appointments: appointments, payments: payments}, nil
}

// Build computes the analytics page for a range key (7d, 30d, 3m, 6m, 1y)
func (s *Service) Build(ctx context.Context, rangeKey string) (*Analytics, error) {
	now := s.now()
	w, err := ParseRange(rangeKey, now)
	if err != nil {
		return nil, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	patients := patientAnalytics(snap.patients, w, now)
	appointments := appointmentAnalytics(snap.appointments, w, now)

	s.metrics.RecordOperation(ctx, entity, "build")
	return &Analytics{
		Range:        w,
		Patients:     patients,
		Appointments: appointments,
		Financial:    financialAnalytics(snap.payments, w, now),
		Performance:  performance(snap.appointments, patients, w),
		GeneratedAt:  now.UTC(),
	}, nil
}

func patientAnalytics(patients []patient.Patient, w Window, now time.Time) PatientAnalytics {
	withBirthDate := query.Apply(patients, query.Where(func(p patient.Patient) bool {
		_, err := query.ParseDate(p.BirthDate)
		return err == nil
	}))

	return PatientAnalytics{
		Total:    len(patients),
		New:      query.Count(patients, func(p patient.Patient) bool { return w.Contains(p.RegistrationDate) }),
		Active:   query.Count(patients, func(p patient.Patient) bool { return p.Status == patient.StatusActive }),
		Inactive: query.Count(patients, func(p patient.Patient) bool { return p.Status == patient.StatusInactive }),
		AgeGroups: query.Breakdown(AgeGroups, query.CountBy(withBirthDate, func(p patient.Patient) string {
			return AgeGroup(p.Age(now))
		})),
		Sex: query.Breakdown([]patient.Sex{patient.SexMale, patient.SexFemale},
			query.CountBy(patients, func(p patient.Patient) patient.Sex { return p.Sex })),
		Trend: query.MonthlyTrend(patients, func(p patient.Patient) string { return p.RegistrationDate }, nil, now, w.TrendMonths),
	}
}

// AgeGroup buckets an age into the report's age bands
func AgeGroup(age int) string {
	switch {
	case age <= 18:
		return "0-18"
	case age <= 35:
		return "19-35"
	case age <= 50:
		return "36-50"
	case age <= 65:
		return "51-65"
	default:
		return "65+"
	}
}

func appointmentsIn(all []appointment.Appointment, w Window) []appointment.Appointment {
	return query.Apply(all, query.Where(func(a appointment.Appointment) bool { return w.Contains(a.Date) }))
}

func withStatus(status appointment.Status) func(appointment.Appointment) bool {
	return func(a appointment.Appointment) bool { return a.Status == status }
}

func appointmentAnalytics(all []appointment.Appointment, w Window, now time.Time) AppointmentAnalytics {
	in := appointmentsIn(all, w)
	byType := query.CountBy(in, func(a appointment.Appointment) string { return a.Type })
	byDoctor := query.CountBy(in, func(a appointment.Appointment) string { return a.Doctor })

	return AppointmentAnalytics{
		Total:     len(in),
		Completed: query.Count(in, withStatus(appointment.StatusCompleted)),
		Cancelled: query.Count(in, withStatus(appointment.StatusCancelled)),
		NoShow:    query.Count(in, withStatus(appointment.StatusNoShow)),
		ByType:    query.Breakdown(query.SortedKeys(byType), byType),
		ByDoctor:  query.Breakdown(query.SortedKeys(byDoctor), byDoctor),
		Trend:     query.MonthlyTrend(all, func(a appointment.Appointment) string { return a.Date }, nil, now, w.TrendMonths),
	}
}

func paymentsIn(all []payment.Payment, w Window) []payment.Payment {
	return query.Apply(all, query.Where(func(p payment.Payment) bool { return w.Contains(p.Date) }))
}

func paid(p payment.Payment) float64 { return p.AmountPaid }

func financialAnalytics(all []payment.Payment, w Window, now time.Time) FinancialAnalytics {
	in := paymentsIn(all, w)
	revenue := query.Sum(in, paid)
	previous := query.Sum(paymentsIn(all, w.Previous()), paid)
	due := query.Sum(in, func(p payment.Payment) float64 { return p.AmountDue })

	return FinancialAnalytics{
		Revenue:       revenue,
		RevenueGrowth: query.Percent(revenue-previous, previous),
		Outstanding: query.Sum(query.Apply(all, query.Where(func(p payment.Payment) bool {
			return p.Remaining > 0 && p.Status != payment.StatusCancelled
		})), func(p payment.Payment) float64 { return p.Remaining }),
		CollectionRate: query.Percent(revenue, due),
		AveragePayment: query.Average(revenue, len(in)),
		ByMethod:       payment.MethodBreakdown(in),
		ByServiceType:  payment.TypeBreakdown(in),
		Trend:          query.MonthlyTrend(all, func(p payment.Payment) string { return p.Date }, paid, now, w.TrendMonths),
	}
}

func performance(all []appointment.Appointment, patients PatientAnalytics, w Window) PerformanceAnalytics {
	in := appointmentsIn(all, w)
	completed := query.Apply(in, query.Where(withStatus(appointment.StatusCompleted)))
	total := float64(len(in))

	return PerformanceAnalytics{
		CompletionRate:   query.Percent(float64(len(completed)), total),
		CancellationRate: query.Percent(float64(query.Count(in, withStatus(appointment.StatusCancelled))), total),
		NoShowRate:       query.Percent(float64(query.Count(in, withStatus(appointment.StatusNoShow))), total),
		AverageConsultationMinutes: query.Average(
			query.Sum(completed, func(a appointment.Appointment) float64 { return float64(a.Duration) }),
			len(completed),
		),
		NewPatientRate: query.Percent(float64(patients.New), float64(patients.Total)),
	}
}

// Overview computes the dashboard cards. Upcoming lists the next scheduled
// or confirmed appointments from today on.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.now()
	today := query.FormatDate(now)

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	todays := query.Apply(snap.appointments, query.Where(func(a appointment.Appointment) bool { return a.Date == today }))
	waiting := query.In(func(a appointment.Appointment) string { return string(a.Status) },
		string(appointment.StatusScheduled), string(appointment.StatusConfirmed))

	upcoming := query.SortByKey(query.Apply(snap.appointments,
		query.Where(func(a appointment.Appointment) bool { return a.Date >= today }),
		waiting,
	), appointment.Appointment.SortKey)
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	finance := payment.ComputeStats(snap.payments, now)

	return &Overview{
		TotalPatients:     len(snap.patients),
		ActivePatients:    query.Count(snap.patients, func(p patient.Patient) bool { return p.Status == patient.StatusActive }),
		TodayAppointments: len(todays),
		TodayPending:      len(query.Apply(todays, waiting)),
		MonthRevenue:      finance.MonthRevenue,
		PendingAmount:     finance.Pending,
		Upcoming:          upcoming,
	}, nil
}
