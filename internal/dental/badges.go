package dental

import "github.com/WailSalutem-Health-Care/clinic-service/internal/badge"

var SeverityBadges = map[Severity]badge.Badge{
	SeverityMild:     {Label: "Léger", Color: badge.Green},
	SeverityModerate: {Label: "Moyen", Color: badge.Yellow},
	SeveritySevere:   {Label: "Sévère", Color: badge.Orange},
	SeverityUrgent:   {Label: "Urgent", Color: badge.Red},
}

var ProblemStatusBadges = map[ProblemStatus]badge.Badge{
	ProblemPending:    {Label: "En attente", Color: badge.Gray, Icon: "clock"},
	ProblemInProgress: {Label: "En cours", Color: badge.Blue, Icon: "stethoscope"},
	ProblemDone:       {Label: "Terminé", Color: badge.Green, Icon: "check-circle"},
	ProblemCancelled:  {Label: "Annulé", Color: badge.Red},
}

var SessionStatusBadges = map[SessionStatus]badge.Badge{
	SessionScheduled: {Label: "Programmée", Color: badge.Blue},
	SessionDone:      {Label: "Terminée", Color: badge.Green},
	SessionCancelled: {Label: "Annulée", Color: badge.Red},
}

var ChartBadges = map[ChartStatus]badge.Badge{
	ChartHealthy:   {Label: "Saine", Color: badge.Green},
	ChartProblem:   {Label: "Problème", Color: badge.Yellow},
	ChartTreatment: {Label: "En traitement", Color: badge.Blue},
	ChartSevere:    {Label: "Sévère", Color: badge.Orange},
	ChartUrgent:    {Label: "Urgent", Color: badge.Red},
}
