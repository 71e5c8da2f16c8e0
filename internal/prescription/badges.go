package prescription

import "github.com/WailSalutem-Health-Care/clinic-service/internal/badge"

var StatusBadges = map[Status]badge.Badge{
	StatusDraft:     {Label: "Brouillon", Color: badge.Gray},
	StatusSent:      {Label: "Envoyée", Color: badge.Blue, Icon: "send"},
	StatusDelivered: {Label: "Délivrée", Color: badge.Green, Icon: "file-text"},
	StatusCancelled: {Label: "Annulée", Color: badge.Red},
}

var categoryColors = map[string]badge.Color{
	"Antibiotique":       badge.Red,
	"Anti-inflammatoire": badge.Orange,
	"Antalgique":         badge.Blue,
	"Antiseptique":       badge.Green,
	"Corticoïde":         badge.Purple,
}

// CategoryBadge colors a medication category, gray when unlisted
func CategoryBadge(category string) badge.Badge {
	color, ok := categoryColors[category]
	if !ok {
		color = badge.Gray
	}
	return badge.Badge{Label: category, Color: color}
}
