package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// SortedUnique returns the distinct values sorted ascending, leaving the input untouched
func SortedUnique[T constraints.Ordered](values []T) []T {
	unique := slices.Clone(values)
	slices.Sort(unique)

	return slices.Compact(unique)
}
