package patient

import "github.com/WailSalutem-Health-Care/clinic-service/internal/badge"

var StatusBadges = map[Status]badge.Badge{
	StatusActive:   {Label: "Actif", Color: badge.Green},
	StatusInactive: {Label: "Inactif", Color: badge.Gray},
}

var TreatmentBadges = map[TreatmentStatus]badge.Badge{
	TreatmentOngoing:   {Label: "En cours", Color: badge.Blue},
	TreatmentCompleted: {Label: "Terminé", Color: badge.Green},
	TreatmentSuspended: {Label: "Suspendu", Color: badge.Orange},
}

var SessionBadges = map[SessionStatus]badge.Badge{
	SessionScheduled: {Label: "Programmée", Color: badge.Blue},
	SessionCompleted: {Label: "Terminée", Color: badge.Green},
	SessionCancelled: {Label: "Annulée", Color: badge.Red},
}

var PaymentBadges = map[PaymentStatus]badge.Badge{
	PaymentPaid:    {Label: "Payé", Color: badge.Green},
	PaymentPending: {Label: "En attente", Color: badge.Orange},
	PaymentPartial: {Label: "Partiel", Color: badge.Yellow},
}
