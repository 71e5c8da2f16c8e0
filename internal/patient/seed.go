package patient

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

// SeedPatients returns the demo patient files. Registration and visit dates
// are relative to now so that dashboards always have recent activity.
func SeedPatients(now time.Time) []Patient {
	day := func(months, days int) string {
		return query.FormatDate(now.AddDate(0, months, days))
	}
	stamp := query.StartOfDay(now).UTC()

	return []Patient{
		{
			ID:               "1",
			LastName:         "Benali",
			FirstName:        "Amina",
			BirthDate:        "1985-03-15",
			Phone:            "+212 6 12 34 56 78",
			Email:            "amina.benali@email.com",
			Address:          "123 Rue Hassan II, Casablanca",
			Sex:              SexFemale,
			BloodType:        "A+",
			RegistrationDate: day(-12, 0),
			Status:           StatusActive,
			LastVisit:        day(0, -7),
			NextVisit:        day(0, 7),
			Allergies:        []string{"Pénicilline"},
			MedicalHistory:   "Hypertension",
			Treatments: []Treatment{{
				ID:          "t1",
				Name:        "Traitement Hypertension",
				Description: "Contrôle de la tension artérielle",
				StartDate:   day(-7, 0),
				Status:      TreatmentOngoing,
				Doctor:      "Dr. Alami",
				Notes:       "Surveillance régulière",
			}},
			Sessions: []Session{{
				ID:       "s1",
				Date:     day(0, -7),
				Time:     "10:00",
				Type:     "Consultation",
				Duration: 30,
				Doctor:   "Dr. Alami",
				Notes:    "Contrôle tension",
				Status:   SessionCompleted,
			}},
			Payments: []PaymentEntry{{
				ID:          "p1",
				Date:        day(0, -7),
				Amount:      300,
				Method:      MethodCard,
				Description: "Consultation",
				Status:      PaymentPaid,
			}},
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
		{
			ID:               "2",
			LastName:         "Alami",
			FirstName:        "Mohammed",
			BirthDate:        "1978-07-22",
			Phone:            "+212 6 98 76 54 32",
			Email:            "mohammed.alami@email.com",
			Address:          "456 Avenue Mohammed V, Rabat",
			Sex:              SexMale,
			BloodType:        "O-",
			RegistrationDate: day(-10, 0),
			Status:           StatusActive,
			LastVisit:        day(0, -14),
			Allergies:        []string{},
			MedicalHistory:   "Diabète type 2",
			Treatments: []Treatment{{
				ID:          "t2",
				Name:        "Traitement Diabète",
				Description: "Gestion du diabète type 2",
				StartDate:   day(-10, 0),
				Status:      TreatmentOngoing,
				Doctor:      "Dr. Bennani",
				Notes:       "Régime alimentaire strict",
			}},
			Sessions:  []Session{},
			Payments:  []PaymentEntry{},
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
		{
			ID:               "3",
			LastName:         "Zahara",
			FirstName:        "Fatima",
			BirthDate:        "1992-11-08",
			Phone:            "+212 6 11 22 33 44",
			Email:            "fatima.zahara@email.com",
			Address:          "789 Rue Allal Ben Abdellah, Fès",
			Sex:              SexFemale,
			BloodType:        "B+",
			RegistrationDate: day(-8, 0),
			Status:           StatusActive,
			Allergies:        []string{"Aspirine"},
			MedicalHistory:   "Aucun",
			Treatments:       []Treatment{},
			Sessions:         []Session{},
			Payments:         []PaymentEntry{},
			CreatedAt:        stamp,
			UpdatedAt:        stamp,
		},
	}
}
