package appointment

import "github.com/WailSalutem-Health-Care/clinic-service/internal/badge"

var StatusBadges = map[Status]badge.Badge{
	StatusScheduled:  {Label: "Programmé", Color: badge.Blue, Icon: "clock"},
	StatusConfirmed:  {Label: "Confirmé", Color: badge.Green, Icon: "check-circle"},
	StatusInProgress: {Label: "En cours", Color: badge.Yellow, Icon: "alert-circle"},
	StatusCompleted:  {Label: "Terminé", Color: badge.Gray, Icon: "check-circle"},
	StatusCancelled:  {Label: "Annulé", Color: badge.Red, Icon: "x-circle"},
	StatusNoShow:     {Label: "Absent", Color: badge.Orange, Icon: "x-circle"},
}

// UrgencyBadges has no entry for normale: routine appointments carry no badge
var UrgencyBadges = map[Urgency]badge.Badge{
	UrgencyUrgent:   {Label: "Urgent", Color: badge.Orange},
	UrgencyCritical: {Label: "Critique", Color: badge.RedStrong},
}
