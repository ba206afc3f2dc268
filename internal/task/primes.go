package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxPrimeSpan bounds the number of candidates in one prime search.
const DefaultMaxPrimeSpan = 10_000_000

// ErrRangeTooWide is returned when a range holds more integers than allowed.
var ErrRangeTooWide = errors.New("range is too wide")

// IsPrime tests n by trial division over 6k±1.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Range is an inclusive integer interval.
type Range struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Span returns the number of integers in [lo, hi], in either order. ok is
// false only for the full int range, whose count does not fit in a uint64.
func Span(lo, hi int) (n uint64, ok bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	width := uint64(hi) - uint64(lo)
	if width == math.MaxUint64 {
		return 0, false
	}
	return width + 1, true
}

// SplitRange divides [lo, hi] into at most parts contiguous chunks whose
// sizes differ by at most one, larger chunks first. A reversed range is
// swapped.
func SplitRange(lo, hi, parts int) ([]Range, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: %d parts", ErrInvalidCount, parts)
	}
	n, ok := Span(lo, hi)
	if !ok {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrRangeTooWide, lo, hi)
	}
	lo = min(lo, hi)

	k := min(uint64(parts), n)
	size, rem := n/k, n%k

	out := make([]Range, 0, k)
	start := lo
	for i := uint64(0); i < k; i++ {
		length := size
		if i < rem {
			length++
		}
		// Unsigned addition wraps back to the right signed value.
		end := int(uint64(start) + length - 1)
		out = append(out, Range{Lo: start, Hi: end})
		if i+1 < k {
			start = end + 1
		}
	}
	return out, nil
}

// FindPrimes searches [lo, hi] with one goroutine per chunk and returns the
// primes in ascending order.
func FindPrimes(ctx context.Context, lo, hi, workers int) ([]int, error) {
	chunks, err := SplitRange(lo, hi, workers)
	if err != nil {
		return nil, err
	}

	results := make([][]int, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var found []int
			// Stop on equality so a chunk ending at math.MaxInt cannot wrap.
			for n := chunk.Lo; ; n++ {
				if n%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if IsPrime(n) {
					found = append(found, n)
				}
				if n == chunk.Hi {
					break
				}
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var primes []int
	for _, r := range results {
		primes = append(primes, r...)
	}
	sort.Ints(primes)
	return primes, nil
}
