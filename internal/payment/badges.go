package payment

import "github.com/WailSalutem-Health-Care/clinic-service/internal/badge"

var StatusBadges = map[Status]badge.Badge{
	StatusPaid:      {Label: "Payé", Color: badge.Green, Icon: "check-circle"},
	StatusPartial:   {Label: "Partiel", Color: badge.Yellow, Icon: "clock"},
	StatusPending:   {Label: "En attente", Color: badge.Blue, Icon: "clock"},
	StatusOverdue:   {Label: "En retard", Color: badge.Red, Icon: "alert-circle"},
	StatusCancelled: {Label: "Annulé", Color: badge.Gray},
}

var MethodBadges = map[Method]badge.Badge{
	MethodCard:      {Label: "Carte", Color: badge.Gray, Icon: "credit-card"},
	MethodCash:      {Label: "Espèces", Color: badge.Gray, Icon: "wallet"},
	MethodCheque:    {Label: "Chèque", Color: badge.Gray, Icon: "receipt"},
	MethodTransfer:  {Label: "Virement", Color: badge.Gray, Icon: "dollar-sign"},
	MethodInsurance: {Label: "Assurance", Color: badge.Gray, Icon: "file-text"},
}

var typeLabels = map[Type]string{
	TypeConsultation: "Consultation",
	TypeTreatment:    "Traitement",
	TypeMedication:   "Médicament",
	TypeExam:         "Examen",
	TypeOther:        "Autre",
}

// TypeLabel is the display name of a service type
func TypeLabel(t Type) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}
