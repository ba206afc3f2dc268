package drills

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Pair is one map entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// SortByValue returns the entries of m ordered by value, ascending and
// descending. Equal values are ordered by key.
func SortByValue[K cmp.Ordered, V cmp.Ordered](m map[K]V) (asc, desc []Pair[K, V]) {
	for k, v := range m {
		asc = append(asc, Pair[K, V]{Key: k, Value: v})
	}
	slices.SortFunc(asc, func(a, b Pair[K, V]) int {
		return cmp.Or(cmp.Compare(a.Value, b.Value), cmp.Compare(a.Key, b.Key))
	})
	desc = slices.Clone(asc)
	slices.SortStableFunc(desc, func(a, b Pair[K, V]) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return asc, desc
}

// With returns a copy of m with key set to value.
func With[K comparable, V any](m map[K]V, key K, value V) map[K]V {
	out := maps.Clone(m)
	if out == nil {
		out = make(map[K]V, 1)
	}
	out[key] = value
	return out
}

// Merge combines maps left to right; later maps win on shared keys.
func Merge[K comparable, V any](ms ...map[K]V) map[K]V {
	out := make(map[K]V)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

// Squares maps 1..n to their squares.
func Squares(n int) map[int]int {
	out := make(map[int]int, max(n, 0))
	for x := 1; x <= n; x++ {
		out[x] = x * x
	}
	return out
}

// Set is an unordered collection of distinct values.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet builds a set from items.
func NewSet[T cmp.Ordered](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s))
}

// Add returns a new set with members added.
func (s Set[T]) Add(members ...T) Set[T] {
	out := maps.Clone(s)
	if out == nil {
		out = make(Set[T], len(members))
	}
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out
}

// Remove returns a new set without items. In strict mode a missing item is
// an error and s is returned unchanged.
func (s Set[T]) Remove(strict bool, items ...T) (Set[T], error) {
	out := maps.Clone(s)
	for _, item := range items {
		if strict && !out.Has(item) {
			return s, fmt.Errorf("%w: %v", ErrNotInSet, item)
		}
		delete(out, item)
	}
	return out, nil
}
