package dental

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

// SeedProblems returns the demo tooth problems with dates relative to now
func SeedProblems(now time.Time) []Problem {
	day := func(offset int) string { return query.FormatDate(now.AddDate(0, 0, offset)) }
	stamp := query.StartOfDay(now).UTC()

	items := []Problem{
		{
			ID: "1", Tooth: 16, PatientID: "1", PatientName: "Amina Benali",
			Problem: "Carie profonde", Severity: SeveritySevere, Treatment: "Traitement de canal",
			Status: ProblemInProgress,
			Sessions: []Session{
				{
					ID: "s1", Date: day(-5), Duration: 60, Treatment: "Ouverture de la chambre pulpaire",
					Notes: "Première séance de traitement endodontique", Status: SessionDone,
					Doctor: "Dr. Zahir", Cost: 800,
				},
				{
					ID: "s2", Date: day(9), Duration: 45, Treatment: "Mise en forme canalaire",
					Notes: "Deuxième séance prévue", Status: SessionScheduled,
					Doctor: "Dr. Zahir", Cost: 600,
				},
			},
			DateCreated: day(-7), DateUpdated: day(-5),
			Notes:         "Patient avec antécédents de douleurs nocturnes",
			EstimatedCost: 1400, Cost: 1400, Paid: 800,
		},
		{
			ID: "2", Tooth: 36, PatientID: "2", PatientName: "Mohammed Alami",
			Problem: "Gingivite", Severity: SeverityModerate, Treatment: "Détartrage",
			Status: ProblemDone,
			Sessions: []Session{
				{
					ID: "s3", Date: day(-2), Duration: 30, Treatment: "Détartrage complet",
					Notes: "Détartrage supra et sous-gingival", Status: SessionDone,
					Doctor: "Dr. Lahlou", Cost: 400,
				},
			},
			DateCreated: day(-5), DateUpdated: day(-2),
			Notes:         "Amélioration de l'hygiène bucco-dentaire recommandée",
			EstimatedCost: 400, Cost: 400, Paid: 400,
		},
	}
	for i := range items {
		items[i].CreatedAt = stamp
		items[i].UpdatedAt = stamp
	}
	return items
}
