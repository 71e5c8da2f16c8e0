package reports

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

const (
	Range7Days   = "7d"
	Range30Days  = "30d"
	Range3Months = "3m"
	Range6Months = "6m"
	RangeYear    = "1y"

	DefaultRange = Range30Days
)

var Ranges = []string{Range7Days, Range30Days, Range3Months, Range6Months, RangeYear}

// Window is a closed range of calendar days ending today
type Window struct {
	Key         string    `json:"key"`
	From        time.Time `json:"-"`
	To          time.Time `json:"-"`
	FromDate    string    `json:"from"`
	ToDate      string    `json:"to"`
	TrendMonths int       `json:"trend_months"`
}

// Contains reports whether a YYYY-MM-DD day falls in the window
func (w Window) Contains(day string) bool {
	return query.InRange(day, w.From, w.To)
}

func (w Window) Days() int {
	hours := query.StartOfDay(w.To).Sub(query.StartOfDay(w.From)).Hours()
	return int(math.Round(hours/24)) + 1
}

// Previous is the window of equal length ending the day before w starts
func (w Window) Previous() Window {
	to := w.From.AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -(w.Days() - 1))
	return newWindow(w.Key, from, to, w.TrendMonths)
}

func newWindow(key string, from, to time.Time, trendMonths int) Window {
	return Window{
		Key:         key,
		From:        from,
		To:          to,
		FromDate:    query.FormatDate(from),
		ToDate:      query.FormatDate(to),
		TrendMonths: trendMonths,
	}
}

// ParseRange resolves a range key relative to now. Day ranges count today;
// month ranges cover whole calendar months up to the current one; 1y is the
// current calendar year to date.
func ParseRange(key string, now time.Time) (Window, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = DefaultRange
	}

	switch key {
	case Range7Days:
		return newWindow(key, now.AddDate(0, 0, -6), now, 6), nil
	case Range30Days:
		return newWindow(key, now.AddDate(0, 0, -29), now, 6), nil
	case Range3Months:
		return newWindow(key, query.StartOfMonth(now).AddDate(0, -2, 0), now, 3), nil
	case Range6Months:
		return newWindow(key, query.StartOfMonth(now).AddDate(0, -5, 0), now, 6), nil
	case RangeYear:
		return newWindow(key, time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now, 12), nil
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownRange, key)
	}
}
