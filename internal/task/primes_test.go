package task

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	var got []int
	for n := -3; n <= 30; n++ {
		if IsPrime(n) {
			got = append(got, n)
		}
	}
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
	assert.True(t, IsPrime(7919))
	assert.False(t, IsPrime(7917))
	assert.True(t, IsPrime(math.MaxInt32))
	assert.False(t, IsPrime(math.MaxInt))
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		want   uint64
		ok     bool
	}{
		{name: "single", lo: 3, hi: 3, want: 1, ok: true},
		{name: "reversed", lo: 10, hi: 1, want: 10, ok: true},
		{name: "top of int", lo: math.MaxInt - 5, hi: math.MaxInt, want: 6, ok: true},
		{name: "bottom of int", lo: math.MinInt, hi: math.MinInt + 1, want: 2, ok: true},
		{name: "wider than int", lo: -1, hi: math.MaxInt, want: uint64(math.MaxInt) + 2, ok: true},
		{name: "full int range", lo: math.MinInt, hi: math.MaxInt, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Span(tc.lo, tc.hi)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name          string
		lo, hi, parts int
		want          []Range
	}{
		{name: "uneven", lo: 1, hi: 10, parts: 3, want: []Range{{1, 4}, {5, 7}, {8, 10}}},
		{name: "single value", lo: 5, hi: 5, parts: 4, want: []Range{{5, 5}}},
		{name: "reversed", lo: 10, hi: 1, parts: 2, want: []Range{{1, 5}, {6, 10}}},
		{
			name: "ends at max int", lo: math.MaxInt - 5, hi: math.MaxInt, parts: 4,
			want: []Range{{math.MaxInt - 5, math.MaxInt - 4}, {math.MaxInt - 3, math.MaxInt - 2}, {math.MaxInt - 1, math.MaxInt - 1}, {math.MaxInt, math.MaxInt}},
		},
		{
			name: "crosses zero near the limits", lo: math.MinInt, hi: math.MaxInt - 1, parts: 2,
			want: []Range{{math.MinInt, -1}, {0, math.MaxInt - 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitRange(tc.lo, tc.hi, tc.parts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := SplitRange(1, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = SplitRange(math.MinInt, math.MaxInt, 4)
	assert.ErrorIs(t, err, ErrRangeTooWide)
}

func TestFindPrimes(t *testing.T) {
	primes, err := FindPrimes(context.Background(), 1, 30, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, primes)

	between, err := FindPrimes(context.Background(), 50, 25, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{29, 31, 37, 41, 43, 47}, between)

	_, err = FindPrimes(context.Background(), 1, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestFindPrimes_IntLimits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	top, err := FindPrimes(ctx, math.MaxInt-5, math.MaxInt, 3)
	require.NoError(t, err)
	assert.Empty(t, top)

	bottom, err := FindPrimes(ctx, math.MinInt, math.MinInt+5, 2)
	require.NoError(t, err)
	assert.Empty(t, bottom)

	_, err = FindPrimes(ctx, math.MinInt, math.MaxInt, 4)
	assert.ErrorIs(t, err, ErrRangeTooWide)
}

func TestFindPrimes_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindPrimes(ctx, 1, 1_000_000, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
