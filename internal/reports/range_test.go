package reports

import (
	"errors"
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		key    string
		from   string
		months int
	}{
		{"", "2024-05-17", 6},
		{"7d", "2024-06-09", 6},
		{"30d", "2024-05-17", 6},
		{"3m", "2024-04-01", 3},
		{"6M", "2024-01-01", 6},
		{"1y", "2024-01-01", 12},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			w, err := ParseRange(tt.key, now)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if w.FromDate != tt.from || w.ToDate != "2024-06-15" {
				t.Errorf("Expected %s..2024-06-15, got %s..%s", tt.from, w.FromDate, w.ToDate)
			}
			if w.TrendMonths != tt.months {
				t.Errorf("Expected %d trend months, got %d", tt.months, w.TrendMonths)
			}
		})
	}

	if _, err := ParseRange("2w", now); !errors.Is(err, ErrUnknownRange) {
		t.Errorf("Expected ErrUnknownRange, got %v", err)
	}
}

func TestWindow_Previous(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	w, _ := ParseRange("7d", now)

	if w.Days() != 7 {
		t.Errorf("Expected 7 days, got %d", w.Days())
	}
	prev := w.Previous()
	if prev.FromDate != "2024-06-02" || prev.ToDate != "2024-06-08" {
		t.Errorf("Expected 2024-06-02..2024-06-08, got %s..%s", prev.FromDate, prev.ToDate)
	}
	if !w.Contains("2024-06-09") || w.Contains("2024-06-16") || w.Contains("bad") {
		t.Error("Unexpected window membership")
	}
}

func TestAgeGroup(t *testing.T) {
	tests := map[int]string{0: "0-18", 18: "0-18", 19: "19-35", 35: "19-35", 36: "36-50", 50: "36-50", 51: "51-65", 65: "51-65", 66: "65+"}
	for age, want := range tests {
		if got := AgeGroup(age); got != want {
			t.Errorf("Age %d: expected %s, got %s", age, want, got)
		}
	}
}
