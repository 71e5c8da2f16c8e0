package query

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used by every record date
const DateLayout = "2006-01-02"

// MonthLayout labels a trend bucket
const MonthLayout = "2006-01"

// TrendPoint is one calendar-month bucket
type TrendPoint struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// ParseDate parses a YYYY-MM-DD day in UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month at midnight
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether the YYYY-MM-DD day is t's calendar day
func SameDay(day string, t time.Time) bool {
	return day == FormatDate(t)
}

// InRange reports whether the YYYY-MM-DD day lies in [from, to] inclusive.
// Unparseable days never match.
func InRange(day string, from, to time.Time) bool {
	if _, err := ParseDate(day); err != nil {
		return false
	}
	return day >= FormatDate(from) && day <= FormatDate(to)
}

// MonthlyTrend buckets items into the `months` calendar months ending with
// end's month. Every month is present, zero-filled; items outside the
// window or with unparseable dates are ignored. value may be nil.
func MonthlyTrend[T any](items []T, date Field[T], value func(T) float64, end time.Time, months int) []TrendPoint {
	if months <= 0 {
		return []TrendPoint{}
	}
	first := StartOfMonth(end).AddDate(0, -(months - 1), 0)
	points := make([]TrendPoint, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		label := first.AddDate(0, i, 0).Format(MonthLayout)
		points[i] = TrendPoint{Month: label}
		index[label] = i
	}
	for _, item := range items {
		d, err := ParseDate(date(item))
		if err != nil {
			continue
		}
		i, ok := index[d.Format(MonthLayout)]
		if !ok {
			continue
		}
		points[i].Count++
		if value != nil {
			points[i].Amount += value(item)
		}
	}
	return points
}
