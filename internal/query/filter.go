package query

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Sentinel filter values that disable a criterion
const (
	All   = "all"
	AllFR = "tous"
)

// IsAll reports whether a categorical filter value means "no filter"
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All) || strings.EqualFold(v, AllFR)
}

// Predicate decides whether an item matches one criterion
type Predicate[T any] func(T) bool

// Field extracts a string attribute from an item
type Field[T any] func(T) string

// Apply returns the items matching every predicate, in input order.
// The input slice is never modified.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		return matchesAll(item, preds)
	})
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	return lo.EveryBy(preds, func(p Predicate[T]) bool {
		return p == nil || p(item)
	})
}

// Contains matches items where any field contains term, case-insensitively.
// An empty term matches everything.
func Contains[T any](term string, fields ...Field[T]) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		return lo.SomeBy(fields, func(f Field[T]) bool {
			return strings.Contains(strings.ToLower(f(item)), needle)
		})
	}
}

// Equals matches items whose field equals want. Sentinel values disable it.
func Equals[T any](want string, field Field[T]) Predicate[T] {
	if IsAll(want) {
		return nil
	}
	return func(item T) bool {
		return field(item) == want
	}
}

// In matches items whose field is one of values
func In[T any](field Field[T], values ...string) Predicate[T] {
	set := lo.Keyify(values)
	return func(item T) bool {
		_, ok := set[field(item)]
		return ok
	}
}

// Where wraps an arbitrary condition; a nil cond is a no-op
func Where[T any](cond func(T) bool) Predicate[T] {
	if cond == nil {
		return nil
	}
	return Predicate[T](cond)
}

// SortByKey returns a copy of items sorted ascending by key using plain
// string comparison. Zero-padded "HH:MM" and "2006-01-02" sort correctly.
func SortByKey[T any](items []T, key Field[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}
