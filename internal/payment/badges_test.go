package payment

import (
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
)

func TestBadgeTables_AreExhaustive(t *testing.T) {
	if missing := badge.Missing(StatusBadges, Statuses); len(missing) > 0 {
		t.Errorf("Missing status badges: %v", missing)
	}
	if missing := badge.Missing(MethodBadges, Methods); len(missing) > 0 {
		t.Errorf("Missing method badges: %v", missing)
	}
	for _, ty := range Types {
		if _, ok := typeLabels[ty]; !ok {
			t.Errorf("Missing label for type %s", ty)
		}
	}
}

func TestTypeLabel_Unknown(t *testing.T) {
	if got := TypeLabel("dentaire"); got != "dentaire" {
		t.Errorf("Expected raw value for unknown type, got %s", got)
	}
}
