package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
)

// Saturday
var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

type patientsFunc func(ctx context.Context) ([]patient.Patient, error)

func (f patientsFunc) All(ctx context.Context) ([]patient.Patient, error) { return f(ctx) }

type appointmentsFunc func(ctx context.Context) ([]appointment.Appointment, error)

func (f appointmentsFunc) All(ctx context.Context) ([]appointment.Appointment, error) { return f(ctx) }

type paymentsFunc func(ctx context.Context) ([]payment.Payment, error)

func (f paymentsFunc) All(ctx context.Context) ([]payment.Payment, error) { return f(ctx) }

type fixtures struct {
	patients     []patient.Patient
	appointments []appointment.Appointment
	payments     []payment.Payment
}

func seeded() *fixtures {
	return &fixtures{
		patients:     patient.SeedPatients(fixedNow),
		appointments: appointment.SeedAppointments(fixedNow),
		payments:     payment.SeedPayments(fixedNow),
	}
}

func (f *fixtures) service() *Service {
	svc := NewService(
		patientsFunc(func(ctx context.Context) ([]patient.Patient, error) { return f.patients, nil }),
		appointmentsFunc(func(ctx context.Context) ([]appointment.Appointment, error) { return f.appointments, nil }),
		paymentsFunc(func(ctx context.Context) ([]payment.Payment, error) { return f.payments, nil }),
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestBuild_Patients(t *testing.T) {
	f := seeded()
	f.patients = append(f.patients, patient.Patient{
		ID: "4", LastName: "Tazi", FirstName: "Youssef", BirthDate: "1950-01-01",
		Sex: patient.SexMale, RegistrationDate: "2024-06-01", Status: patient.StatusInactive,
	})

	a, err := f.service().Build(context.Background(), "30d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	p := a.Patients
	if p.Total != 4 || p.New != 1 || p.Active != 3 || p.Inactive != 1 {
		t.Errorf("Unexpected patient counts: %+v", p)
	}

	groups := map[string]int{}
	for _, s := range p.AgeGroups {
		groups[s.Key] = s.Count
	}
	if groups["19-35"] != 1 || groups["36-50"] != 2 || groups["65+"] != 1 || groups["0-18"] != 0 {
		t.Errorf("Unexpected age groups: %+v", p.AgeGroups)
	}
	if len(p.Sex) != 2 || p.Sex[0].Key != "M" || p.Sex[0].Count != 2 || p.Sex[1].Count != 2 {
		t.Errorf("Unexpected sex distribution: %+v", p.Sex)
	}
	if len(p.Trend) != 6 || p.Trend[5].Month != "2024-06" || p.Trend[5].Count != 1 {
		t.Errorf("Unexpected registration trend: %+v", p.Trend)
	}
	if a.Performance.NewPatientRate != 25 {
		t.Errorf("Expected 25%% new patients, got %v", a.Performance.NewPatientRate)
	}
}

func TestBuild_Appointments(t *testing.T) {
	a, err := seeded().service().Build(context.Background(), "30d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ap := a.Appointments
	if ap.Total != 3 {
		t.Errorf("Expected today's 3 appointments in range, got %d", ap.Total)
	}
	if len(ap.ByDoctor) != 2 || ap.ByDoctor[0].Key != "Dr. Alami" || ap.ByDoctor[0].Count != 2 {
		t.Errorf("Unexpected doctor breakdown: %+v", ap.ByDoctor)
	}
	if !almostEqual(ap.ByDoctor[0].Percent, 66.67) {
		t.Errorf("Expected 66.67%%, got %v", ap.ByDoctor[0].Percent)
	}
	if last := ap.Trend[len(ap.Trend)-1]; last.Month != "2024-06" || last.Count != 5 {
		t.Errorf("Expected all 5 June appointments in the trend, got %+v", last)
	}
}

func TestBuild_Financial(t *testing.T) {
	a, err := seeded().service().Build(context.Background(), "30d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	fin := a.Financial
	if fin.Revenue != 1600 {
		t.Errorf("Expected revenue 1600, got %v", fin.Revenue)
	}
	if fin.Outstanding != 700 {
		t.Errorf("Expected outstanding 700, got %v", fin.Outstanding)
	}
	if !almostEqual(fin.CollectionRate, 78.05) {
		t.Errorf("Expected collection rate ~78.05, got %v", fin.CollectionRate)
	}
	if fin.AveragePayment != 400 {
		t.Errorf("Expected average 400, got %v", fin.AveragePayment)
	}
	if fin.RevenueGrowth != 0 {
		t.Errorf("Expected no growth without a previous window, got %v", fin.RevenueGrowth)
	}
	if fin.ByMethod[0].Key != string(payment.MethodCard) || fin.ByMethod[0].Percent != 25 {
		t.Errorf("Unexpected method breakdown: %+v", fin.ByMethod[0])
	}
	if last := fin.Trend[len(fin.Trend)-1]; last.Amount != 1600 {
		t.Errorf("Expected June trend amount 1600, got %v", last.Amount)
	}
}

func TestBuild_RevenueGrowth(t *testing.T) {
	a, err := seeded().service().Build(context.Background(), "7d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if a.Financial.Revenue != 1150 {
		t.Errorf("Expected revenue 1150, got %v", a.Financial.Revenue)
	}
	// previous week collected 450
	if !almostEqual(a.Financial.RevenueGrowth, 155.56) {
		t.Errorf("Expected growth ~155.56, got %v", a.Financial.RevenueGrowth)
	}
}

func TestBuild_Performance(t *testing.T) {
	f := seeded()
	f.appointments[0].Status = appointment.StatusCompleted
	f.appointments[1].Status = appointment.StatusCompleted
	f.appointments[2].Status = appointment.StatusNoShow

	a, err := f.service().Build(context.Background(), "7d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	perf := a.Performance
	if !almostEqual(perf.CompletionRate, 66.67) || !almostEqual(perf.NoShowRate, 33.33) || perf.CancellationRate != 0 {
		t.Errorf("Unexpected rates: %+v", perf)
	}
	// 30 and 45 minute consultations
	if perf.AverageConsultationMinutes != 37.5 {
		t.Errorf("Expected 37.5 minutes, got %v", perf.AverageConsultationMinutes)
	}
}

func TestBuild_Errors(t *testing.T) {
	f := seeded()
	svc := f.service()

	if _, err := svc.Build(context.Background(), "forever"); !errors.Is(err, ErrUnknownRange) {
		t.Errorf("Expected ErrUnknownRange, got %v", err)
	}

	boom := errors.New("db down")
	svc.payments = paymentsFunc(func(ctx context.Context) ([]payment.Payment, error) { return nil, boom })
	if _, err := svc.Build(context.Background(), "30d"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped repository error, got %v", err)
	}
}

func TestOverview(t *testing.T) {
	o, err := seeded().service().Overview(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if o.TotalPatients != 3 || o.ActivePatients != 3 {
		t.Errorf("Unexpected patient cards: %d/%d", o.TotalPatients, o.ActivePatients)
	}
	if o.TodayAppointments != 3 || o.TodayPending != 2 {
		t.Errorf("Expected 3 today with 2 pending, got %d/%d", o.TodayAppointments, o.TodayPending)
	}
	if o.MonthRevenue != 1600 || o.PendingAmount != 400 {
		t.Errorf("Unexpected finance cards: %v/%v", o.MonthRevenue, o.PendingAmount)
	}

	want := []string{"1", "3", "4", "5"}
	if len(o.Upcoming) != len(want) {
		t.Fatalf("Expected %d upcoming, got %d", len(want), len(o.Upcoming))
	}
	for i, id := range want {
		if o.Upcoming[i].ID != id {
			t.Errorf("Expected upcoming %s at %d, got %s", id, i, o.Upcoming[i].ID)
		}
	}
}

func TestExport_Financial(t *testing.T) {
	file, err := seeded().service().Export(context.Background(), SectionFinancial, "7d")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if file.Filename != "rapport-financial-2024-06-09_2024-06-15.csv" {
		t.Errorf("Unexpected filename %s", file.Filename)
	}

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header plus 3 payments, got %d rows", len(rows))
	}
	if rows[0][0] != "invoice_number" || rows[1][0] != "F-2024-001" || rows[1][6] != "350.00" {
		t.Errorf("Unexpected rows: %v", rows[:2])
	}
}

func TestExport_Patients(t *testing.T) {
	file, err := seeded().service().Export(context.Background(), SectionPatients, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rows, _ := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if len(rows) != 4 || rows[1][4] != "39" {
		t.Errorf("Expected 3 patients with Amina aged 39, got %v", rows)
	}
}

func TestExport_QuotesFormulaCells(t *testing.T) {
	f := seeded()
	f.patients[0].LastName = `=HYPERLINK("http://evil.example","x")`
	f.patients[0].FirstName = "@SUM(A1)"
	f.patients[0].Phone = "+1 (555) 010-2000"
	f.patients[1].Phone = "=cmd|'/c calc'!A0"
	f.appointments[0].Type = "+Contrôle"
	f.appointments[0].Doctor = "-2+3"
	f.payments[0].PatientName = "=1+1"

	svc := f.service()

	file, err := svc.Export(context.Background(), SectionPatients, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	rows, _ := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if rows[1][1] != `'=HYPERLINK("http://evil.example","x")` {
		t.Errorf("Expected quoted last name, got %q", rows[1][1])
	}
	if rows[1][2] != "'@SUM(A1)" {
		t.Errorf("Expected quoted first name, got %q", rows[1][2])
	}
	if rows[1][5] != "+1 (555) 010-2000" {
		t.Errorf("Expected phone number unchanged, got %q", rows[1][5])
	}
	if rows[2][5] != "'=cmd|'/c calc'!A0" {
		t.Errorf("Expected quoted phone, got %q", rows[2][5])
	}
	if rows[3][1] != f.patients[2].LastName {
		t.Errorf("Expected plain name unchanged, got %q", rows[3][1])
	}

	file, err = svc.Export(context.Background(), SectionAppointments, "1y")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	body := string(file.Data)
	if strings.Contains(body, ",+Contrôle,") || strings.Contains(body, ",-2+3,") {
		t.Errorf("Expected appointment type and doctor to be quoted, got %s", body)
	}
	if !strings.Contains(body, ",'+Contrôle,'-2+3,") {
		t.Errorf("Expected quoted appointment cells, got %s", body)
	}

	file, err = svc.Export(context.Background(), SectionFinancial, "1y")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(string(file.Data), ",'=1+1,") {
		t.Errorf("Expected quoted patient name, got %s", file.Data)
	}
}

func TestExport_UnknownSection(t *testing.T) {
	if _, err := seeded().service().Export(context.Background(), "performance", "30d"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("Expected ErrUnknownSection, got %v", err)
	}
}
