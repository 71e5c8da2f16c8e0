package payment

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

// SeedPayments returns the demo ledger with dates relative to now
func SeedPayments(now time.Time) []Payment {
	day := func(offset int) string { return query.FormatDate(now.AddDate(0, 0, offset)) }
	stamp := query.StartOfDay(now).UTC()

	items := []Payment{
		{
			ID: "1", PatientID: "1", PatientName: "Amina Benali", PatientPhone: "+212 6 12 34 56 78",
			Amount: 500, AmountDue: 500, AmountPaid: 350, Remaining: 150,
			Date: day(0), DueDate: day(0),
			Method: MethodCard, Status: StatusPartial, Type: TypeConsultation,
			Description: "Consultation cardiologique + ECG", InvoiceNumber: "F-2024-001",
			Notes: "Paiement partiel, reste à régler",
		},
		{
			ID: "2", PatientID: "2", PatientName: "Mohammed Alami", PatientPhone: "+212 6 98 76 54 32",
			Amount: 800, AmountDue: 800, AmountPaid: 800, Remaining: 0,
			Date: day(-1), DueDate: day(-1),
			Method: MethodInsurance, Status: StatusPaid, Type: TypeTreatment,
			Description: "Traitement diabète - Suivi mensuel", InvoiceNumber: "F-2024-002",
			Notes: "Paiement via assurance maladie",
		},
		{
			ID: "3", PatientID: "3", PatientName: "Fatima Zahara", PatientPhone: "+212 6 11 22 33 44",
			Amount: 300, AmountDue: 300, AmountPaid: 0, Remaining: 300,
			Date: day(-5), DueDate: day(-2),
			Method: MethodCash, Status: StatusOverdue, Type: TypeConsultation,
			Description: "Consultation dermatologie", InvoiceNumber: "F-2024-003",
			Notes: "Patient à rappeler", ReminderSent: true,
		},
		{
			ID: "4", PatientID: "1", PatientName: "Amina Benali", PatientPhone: "+212 6 12 34 56 78",
			Amount: 250, AmountDue: 250, AmountPaid: 0, Remaining: 250,
			Date: day(3), DueDate: day(7),
			Method: MethodCard, Status: StatusPending, Type: TypeExam,
			Description: "Analyses de laboratoire", InvoiceNumber: "F-2024-004",
		},
		{
			ID: "5", PatientID: "2", PatientName: "Mohammed Alami", PatientPhone: "+212 6 98 76 54 32",
			Amount: 450, AmountDue: 450, AmountPaid: 450, Remaining: 0,
			Date: day(-10), DueDate: day(-10),
			Method: MethodTransfer, Status: StatusPaid, Type: TypeMedication,
			Description: "Prescription médicaments", InvoiceNumber: "F-2024-005",
			Notes: "Paiement par virement bancaire",
		},
	}
	for i := range items {
		items[i].CreatedAt = stamp
		items[i].UpdatedAt = stamp
	}
	return items
}
