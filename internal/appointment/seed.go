package appointment

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

// SeedAppointments returns the demo schedule: three appointments today and
// two over the next two days.
func SeedAppointments(now time.Time) []Appointment {
	today := query.FormatDate(now)
	plus := func(days int) string { return query.FormatDate(now.AddDate(0, 0, days)) }
	stamp := query.StartOfDay(now).UTC()

	items := []Appointment{
		{
			ID: "1", PatientID: "1", PatientName: "Amina Benali", PatientPhone: "+212 6 12 34 56 78",
			Date: today, Time: "09:00", Duration: 30,
			Type: "Consultation générale", Doctor: "Dr. Alami", Status: StatusConfirmed,
			Notes: "Contrôle routine", Urgency: UrgencyNormal, Room: "Cabinet 1",
			Reason: "Consultation de routine", ReminderSent: true,
		},
		{
			ID: "2", PatientID: "2", PatientName: "Mohammed Alami", PatientPhone: "+212 6 98 76 54 32",
			Date: today, Time: "10:30", Duration: 45,
			Type: "Suivi cardiologique", Doctor: "Dr. Bennani", Status: StatusInProgress,
			Notes: "Patient avec antécédents cardiaques", Urgency: UrgencyUrgent, Room: "Cabinet 2",
			Reason: "Suivi cardiologique", ReminderSent: true,
		},
		{
			ID: "3", PatientID: "3", PatientName: "Fatima Zahara", PatientPhone: "+212 6 11 22 33 44",
			Date: today, Time: "14:00", Duration: 30,
			Type: "Contrôle diabète", Doctor: "Dr. Alami", Status: StatusScheduled,
			Urgency: UrgencyNormal, Room: "Cabinet 1",
			Reason: "Contrôle glycémie",
		},
		{
			ID: "4", PatientID: "1", PatientName: "Amina Benali", PatientPhone: "+212 6 12 34 56 78",
			Date: plus(1), Time: "11:00", Duration: 30,
			Type: "Suivi traitement", Doctor: "Dr. Alami", Status: StatusScheduled,
			Notes: "Suivi hypertension", Urgency: UrgencyNormal, Room: "Cabinet 1",
			Reason: "Suivi traitement hypertension",
		},
		{
			ID: "5", PatientID: "2", PatientName: "Mohammed Alami", PatientPhone: "+212 6 98 76 54 32",
			Date: plus(2), Time: "15:30", Duration: 60,
			Type: "Bilan complet", Doctor: "Dr. Bennani", Status: StatusScheduled,
			Notes: "Bilan annuel", Urgency: UrgencyNormal, Room: "Cabinet 2",
			Reason: "Bilan de santé annuel",
		},
	}
	for i := range items {
		items[i].CreatedAt = stamp
		items[i].UpdatedAt = stamp
	}
	return items
}
