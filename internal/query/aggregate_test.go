package query

import (
	"math"
	"reflect"
	"testing"
	"time"
)

type bill struct {
	Status string
	Method string
	Due    float64
	Paid   float64
	Date   string
}

func bills() []bill {
	return []bill{
		{Status: "partiel", Method: "carte", Due: 500, Paid: 350, Date: "2024-03-10"},
		{Status: "paye", Method: "assurance", Due: 800, Paid: 800, Date: "2024-03-02"},
		{Status: "en_retard", Method: "especes", Due: 300, Paid: 0, Date: "2024-01-20"},
		{Status: "paye", Method: "carte", Due: 450, Paid: 450, Date: "2023-12-31"},
	}
}

// TestPercent_ZeroTotal tests the division-by-zero guard
func TestPercent_ZeroTotal(t *testing.T) {
	if got := Percent(0, 0); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := Percent(5, 0); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if math.IsNaN(Percent(0, 0)) {
		t.Error("Expected a number, got NaN")
	}
	if got := Percent(1, 4); got != 25 {
		t.Errorf("Expected 25, got %v", got)
	}
}

// TestAverage_Empty tests the empty average guard
func TestAverage_Empty(t *testing.T) {
	if got := Average(100, 0); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := Average(100, 4); got != 25 {
		t.Errorf("Expected 25, got %v", got)
	}
}

// TestCountBy tests grouping counts
func TestCountBy(t *testing.T) {
	counts := CountBy(bills(), func(b bill) string { return b.Status })
	want := map[string]int{"partiel": 1, "paye": 2, "en_retard": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}
}

// TestSumAndSumBy tests sums over a numeric field
func TestSumAndSumBy(t *testing.T) {
	paid := func(b bill) float64 { return b.Paid }

	if got := Sum(bills(), paid); got != 1600 {
		t.Errorf("Expected 1600, got %v", got)
	}
	if got := Sum([]bill{}, paid); got != 0 {
		t.Errorf("Expected 0 for empty input, got %v", got)
	}

	byMethod := SumBy(bills(), func(b bill) string { return b.Method }, paid)
	if byMethod["carte"] != 800 {
		t.Errorf("Expected 800 for carte, got %v", byMethod["carte"])
	}
}

// TestCount tests conditional counting
func TestCount(t *testing.T) {
	n := Count(bills(), func(b bill) bool { return b.Paid < b.Due })
	if n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
}

// TestBreakdown tests percentages of the total in a fixed order
func TestBreakdown(t *testing.T) {
	counts := CountBy(bills(), func(b bill) string { return b.Method })
	shares := Breakdown([]string{"carte", "especes", "cheque", "assurance"}, counts)

	if len(shares) != 4 {
		t.Fatalf("Expected 4 shares, got %d", len(shares))
	}
	if shares[0].Key != "carte" || shares[0].Count != 2 || shares[0].Percent != 50 {
		t.Errorf("Unexpected carte share: %+v", shares[0])
	}
	if shares[2].Count != 0 || shares[2].Percent != 0 {
		t.Errorf("Expected empty cheque share, got %+v", shares[2])
	}
}

// TestBreakdown_Empty tests that no records yields zero percentages
func TestBreakdown_Empty(t *testing.T) {
	shares := Breakdown([]string{"carte", "especes"}, map[string]int{})
	for _, s := range shares {
		if s.Percent != 0 || math.IsNaN(s.Percent) {
			t.Errorf("Expected 0%%, got %v", s.Percent)
		}
	}
}

// TestRelativeShares tests percentages of the maximum
func TestRelativeShares(t *testing.T) {
	shares := RelativeShares([]string{"a", "b", "c"}, map[string]float64{"a": 200, "b": 50})
	if shares[0].Percent != 100 || shares[1].Percent != 25 || shares[2].Percent != 0 {
		t.Errorf("Unexpected shares: %+v", shares)
	}

	empty := RelativeShares([]string{"a"}, map[string]float64{})
	if empty[0].Percent != 0 {
		t.Errorf("Expected 0 when all amounts are 0, got %v", empty[0].Percent)
	}
}

// TestMax tests the largest value including negative inputs
func TestMax(t *testing.T) {
	if got := Max(); got != 0 {
		t.Errorf("Expected 0 for empty input, got %v", got)
	}
	if got := Max(-5, -2, -9); got != -2 {
		t.Errorf("Expected -2, got %v", got)
	}
	if got := Max(3, 12.5, 7); got != 12.5 {
		t.Errorf("Expected 12.5, got %v", got)
	}
}

// TestSumBy_EveryGroup tests that each key gets its own total
func TestSumBy_EveryGroup(t *testing.T) {
	due := SumBy(bills(), func(b bill) string { return b.Status }, func(b bill) float64 { return b.Due })
	want := map[string]float64{"partiel": 500, "paye": 1250, "en_retard": 300}
	if !reflect.DeepEqual(due, want) {
		t.Errorf("Expected %v, got %v", want, due)
	}
	if got := SumBy([]bill{}, func(b bill) string { return b.Status }, func(b bill) float64 { return b.Due }); len(got) != 0 {
		t.Errorf("Expected no groups for empty input, got %v", got)
	}
}

// TestSortedKeys tests descending count order
func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"b": 2, "a": 2, "c": 5})
	if !reflect.DeepEqual(keys, []string{"c", "a", "b"}) {
		t.Errorf("Expected [c a b], got %v", keys)
	}
}

// TestMonthlyTrend tests zero-filled calendar buckets
func TestMonthlyTrend(t *testing.T) {
	end := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	points := MonthlyTrend(bills(), func(b bill) string { return b.Date }, func(b bill) float64 { return b.Paid }, end, 3)

	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	want := []TrendPoint{
		{Month: "2024-01", Count: 1, Amount: 0},
		{Month: "2024-02", Count: 0, Amount: 0},
		{Month: "2024-03", Count: 2, Amount: 1150},
	}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("Expected %+v, got %+v", want, points)
	}
}

// TestMonthlyTrend_CrossesYear tests bucket labels across a year boundary
func TestMonthlyTrend_CrossesYear(t *testing.T) {
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	points := MonthlyTrend(bills(), func(b bill) string { return b.Date }, nil, end, 2)

	if points[0].Month != "2023-12" || points[0].Count != 1 {
		t.Errorf("Unexpected first bucket: %+v", points[0])
	}
	if points[1].Month != "2024-01" || points[1].Count != 1 {
		t.Errorf("Unexpected second bucket: %+v", points[1])
	}
}

// TestInRange tests inclusive day ranges
func TestInRange(t *testing.T) {
	from := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	cases := map[string]bool{
		"2024-03-01": true,
		"2024-03-10": true,
		"2024-02-29": false,
		"2024-03-11": false,
		"not-a-date": false,
	}
	for day, want := range cases {
		if got := InRange(day, from, to); got != want {
			t.Errorf("InRange(%s) = %v, want %v", day, got, want)
		}
	}
}
