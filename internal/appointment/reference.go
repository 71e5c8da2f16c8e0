package appointment

import "fmt"

const DefaultDuration = 30

var Doctors = []string{"Dr. Alami", "Dr. Bennani", "Dr. Tazi", "Dr. Lazrak"}

var Rooms = []string{"Cabinet 1", "Cabinet 2", "Salle d'examen", "Salle de consultation"}

var ConsultationTypes = []string{
	"Consultation générale",
	"Consultation spécialisée",
	"Suivi traitement",
	"Contrôle",
	"Urgence",
	"Bilan de santé",
	"Vaccination",
	"Certificat médical",
}

var Durations = []int{15, 30, 45, 60, 90}

// TimeSlots are the bookable start times: mornings 08:00-12:30 and
// afternoons 14:00-17:30, every 30 minutes.
var TimeSlots = buildSlots([2]int{8 * 60, 12*60 + 30}, [2]int{14 * 60, 17*60 + 30})

func buildSlots(ranges ...[2]int) []string {
	var out []string
	for _, r := range ranges {
		for m := r[0]; m <= r[1]; m += 30 {
			out = append(out, formatMinutes(m))
		}
	}
	return out
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func GetOptions() Options {
	return Options{
		Doctors:           Doctors,
		Rooms:             Rooms,
		ConsultationTypes: ConsultationTypes,
		TimeSlots:         TimeSlots,
		Durations:         Durations,
		Urgencies:         Urgencies,
	}
}
