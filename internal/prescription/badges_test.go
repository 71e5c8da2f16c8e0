package prescription

import (
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
)

func TestStatusBadges_AreExhaustive(t *testing.T) {
	if missing := badge.Missing(StatusBadges, Statuses); len(missing) > 0 {
		t.Errorf("Missing status badges: %v", missing)
	}
}

func TestCategoryBadge(t *testing.T) {
	tests := []struct {
		category string
		want     badge.Color
	}{
		{"Antibiotique", badge.Red},
		{"Anti-inflammatoire", badge.Orange},
		{"Antalgique", badge.Blue},
		{"Antiseptique", badge.Green},
		{"Corticoïde", badge.Purple},
		{"Antalgique opiacé", badge.Gray},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := CategoryBadge(tt.category)
			if got.Color != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Color)
			}
			if got.Label != tt.category {
				t.Errorf("Expected label %s, got %s", tt.category, got.Label)
			}
		})
	}
}
