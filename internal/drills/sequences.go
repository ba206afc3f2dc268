package drills

import (
	"cmp"
	"errors"
	"slices"
)

// ErrEmpty is returned by helpers that need at least one element.
var ErrEmpty = errors.New("sequence is empty")

// FirstMiddleLast returns the first, middle (index len/2) and last elements.
func FirstMiddleLast[T any](items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return []T{items[0], items[len(items)/2], items[len(items)-1]}, nil
}

// SwapFirstLast returns a copy with the first and last elements exchanged.
func SwapFirstLast[T any](items []T) []T {
	out := slices.Clone(items)
	if len(out) >= 2 {
		out[0], out[len(out)-1] = out[len(out)-1], out[0]
	}
	return out
}

// Count returns how many elements equal v.
func Count[T comparable](items []T, v T) int {
	n := 0
	for _, item := range items {
		if item == v {
			n++
		}
	}
	return n
}

// IndexOf returns the index of the first element equal to v.
func IndexOf[T comparable](items []T, v T) (int, bool) {
	i := slices.Index(items, v)
	return i, i >= 0
}

// MaxMin returns the largest and smallest elements.
func MaxMin[T cmp.Ordered](items []T) (hi, lo T, err error) {
	if len(items) == 0 {
		return hi, lo, ErrEmpty
	}
	return slices.Max(items), slices.Min(items), nil
}

// Reversed returns a reversed copy.
func Reversed[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}

// Repeat returns items concatenated with itself n times.
func Repeat[T any](items []T, n int) []T {
	out := make([]T, 0, len(items)*max(n, 0))
	for range n {
		out = append(out, items...)
	}
	return out
}
