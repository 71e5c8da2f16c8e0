package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

const (
	SectionPatients     = "patients"
	SectionAppointments = "appointments"
	SectionFinancial    = "financial"
)

var Sections = []string{SectionPatients, SectionAppointments, SectionFinancial}

type ExportFile struct {
	Filename string
	Data     []byte
}

// Export renders one section as CSV. Patients are exported whole;
// appointments and payments are limited to the range.
func (s *Service) Export(ctx context.Context, section, rangeKey string) (*ExportFile, error) {
	now := s.now()
	w, err := ParseRange(rangeKey, now)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch section {
	case SectionPatients:
		all, err := s.patients.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load patients: %w", err)
		}
		rows = patientRows(all, now)
	case SectionAppointments:
		all, err := s.appointments.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load appointments: %w", err)
		}
		rows = appointmentRows(query.SortByKey(appointmentsIn(all, w), appointment.Appointment.SortKey))
	case SectionFinancial:
		all, err := s.payments.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		rows = paymentRows(paymentsIn(all, w))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write %s export: %w", section, err)
	}

	s.metrics.RecordOperation(ctx, entity, "export")
	return &ExportFile{
		Filename: fmt.Sprintf("rapport-%s-%s_%s.csv", section, w.FromDate, w.ToDate),
		Data:     buf.Bytes(),
	}, nil
}

func patientRows(items []patient.Patient, now time.Time) [][]string {
	rows := [][]string{{"id", "last_name", "first_name", "sex", "age", "phone", "status", "registration_date"}}
	for _, p := range items {
		rows = append(rows, []string{
			p.ID, cell(p.LastName), cell(p.FirstName), string(p.Sex), strconv.Itoa(p.Age(now)),
			phone(p.Phone), string(p.Status), p.RegistrationDate,
		})
	}
	return rows
}

func appointmentRows(items []appointment.Appointment) [][]string {
	rows := [][]string{{"id", "date", "time", "patient", "type", "doctor", "duration", "status"}}
	for _, a := range items {
		rows = append(rows, []string{
			a.ID, a.Date, a.Time, cell(a.PatientName), cell(a.Type), cell(a.Doctor),
			strconv.Itoa(a.Duration), string(a.Status),
		})
	}
	return rows
}

func paymentRows(items []payment.Payment) [][]string {
	rows := [][]string{{"invoice_number", "date", "patient", "type", "method", "amount_due", "amount_paid", "remaining", "status"}}
	for _, p := range items {
		rows = append(rows, []string{
			p.InvoiceNumber, p.Date, cell(p.PatientName), cell(string(p.Type)), string(p.Method),
			money(p.AmountDue), money(p.AmountPaid), money(p.Remaining), string(p.Status),
		})
	}
	return rows
}

// cell quotes free text a spreadsheet would otherwise evaluate as a formula
func cell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// phone keeps "+212 6 12 34 56 78" style numbers readable and quotes
// anything else like other free text
func phone(v string) string {
	if strings.Trim(v, "+0123456789 .-()") == "" {
		return v
	}
	return cell(v)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
