package query

import (
	"sort"

	"github.com/samber/lo"
)

// Share is one row of a categorical breakdown
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Amount  float64 `json:"amount,omitempty"`
	Percent float64 `json:"percent"`
}

// Count returns how many items satisfy cond
func Count[T any](items []T, cond func(T) bool) int {
	return lo.CountBy(items, cond)
}

// CountBy groups items by key and counts each group
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int {
	return lo.CountValuesBy(items, key)
}

// Sum adds value over all items
func Sum[T any](items []T, value func(T) float64) float64 {
	return lo.SumBy(items, value)
}

// SumBy groups items by key and sums value per group
func SumBy[T any, K comparable](items []T, key func(T) K, value func(T) float64) map[K]float64 {
	return lo.MapValues(lo.GroupBy(items, key), func(group []T, _ K) float64 {
		return lo.SumBy(group, value)
	})
}

// Percent returns part/total*100, or 0 when total is 0
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Average returns sum/n, or 0 when n is 0
func Average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Max returns the largest value, 0 for an empty input
func Max(values ...float64) float64 {
	return lo.Max(values)
}

// Breakdown turns counts into shares of the total, in the given key order.
// Keys missing from counts appear with a zero count.
func Breakdown[K ~string](order []K, counts map[K]int) []Share {
	total := 0
	for _, k := range order {
		total += counts[k]
	}
	out := make([]Share, 0, len(order))
	for _, k := range order {
		c := counts[k]
		out = append(out, Share{
			Key:     string(k),
			Count:   c,
			Percent: Percent(float64(c), float64(total)),
		})
	}
	return out
}

// RelativeShares expresses each amount as a percentage of the largest one
func RelativeShares[K ~string](order []K, amounts map[K]float64) []Share {
	top := lo.Max(lo.Map(order, func(k K, _ int) float64 { return amounts[k] }))
	out := make([]Share, 0, len(order))
	for _, k := range order {
		out = append(out, Share{
			Key:     string(k),
			Amount:  amounts[k],
			Percent: Percent(amounts[k], top),
		})
	}
	return out
}

// SortedKeys returns the keys of counts ordered by descending count, ties by key
func SortedKeys(counts map[string]int) []string {
	keys := lo.Keys(counts)
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
