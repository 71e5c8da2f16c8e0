package prescription

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

func prescribe(prescriptionID, medicationID string) PrescribedMedication {
	m, _ := LookupMedication(medicationID)
	return PrescribedMedication{Medication: m, PrescriptionID: prescriptionID}
}

// SeedPrescriptions returns the demo prescriptions with dates relative to now
func SeedPrescriptions(now time.Time) []Prescription {
	day := func(offset int) string { return query.FormatDate(now.AddDate(0, 0, offset)) }
	stamp := query.StartOfDay(now).UTC()

	amox := prescribe("ORD-2024-001", "1")
	amox.CustomInstructions = "Bien terminer le traitement même si amélioration"
	ibu := prescribe("ORD-2024-001", "2")
	ibu.CustomDuration = "3 jours"

	items := []Prescription{
		{
			ID: "ORD-2024-001", PatientID: "1", PatientName: "Amina Benali", PatientAge: 39, PatientWeight: 65,
			Date: day(-3), Doctor: "Dr. Zahir",
			Medications: []PrescribedMedication{amox, ibu},
			Diagnosis:   "Infection dentaire", Symptoms: "Douleur intense, gonflement",
			Notes:  "Patient allergique à l'aspirine",
			Status: StatusSent, Pharmacy: "Pharmacie Centrale",
		},
		{
			ID: "ORD-2024-002", PatientID: "2", PatientName: "Mohammed Alami", PatientAge: 45,
			Date: day(-6), Doctor: "Dr. Lahlou",
			Medications: []PrescribedMedication{prescribe("ORD-2024-002", "4")},
			Diagnosis:   "Gingivite", Symptoms: "Saignement gingival",
			Notes:  "Améliorer l'hygiène bucco-dentaire",
			Status: StatusDelivered, Pharmacy: "Pharmacie Atlas", DeliveryDate: day(-6),
		},
	}
	for i := range items {
		items[i].CreatedAt = stamp
		items[i].UpdatedAt = stamp
	}
	return items
}
