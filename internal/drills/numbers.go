package drills

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/phrazzld/lessonkit/internal/task"
)

var (
	// ErrNegative is returned for inputs that must not be negative.
	ErrNegative = errors.New("n must be non-negative")

	// ErrNotInSet is returned by a strict Set.Remove.
	ErrNotInSet = errors.New("item not in set")
)

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// WeirdOrNot classifies n: odd numbers and even numbers in 6..20 are
// "Weird", other even numbers are "Not Weird".
func WeirdOrNot(n int) string {
	if n%2 != 0 {
		return "Weird"
	}
	if n >= 6 && n <= 20 {
		return "Weird"
	}
	return "Not Weird"
}

// EvensBetween returns the even numbers in the closed range between a and b,
// in ascending order whichever bound comes first.
func EvensBetween(a, b int) []int {
	lo, hi := min(a, b), max(a, b)
	if lo%2 != 0 {
		lo++
	}
	out := []int{}
	for v := lo; v <= hi; v += 2 {
		out = append(out, v)
	}
	return out
}

// SquaresBelow returns i*i for i in 0..n-1.
func SquaresBelow(n int) []int {
	out := make([]int, 0, max(n, 0))
	for i := range max(n, 0) {
		out = append(out, i*i)
	}
	return out
}

// NumberTriangle returns rows 1, 1 2, ..., 1..n.
func NumberTriangle(n int) [][]int {
	rows := make([][]int, 0, max(n, 0))
	for r := 1; r <= n; r++ {
		row := make([]int, r)
		for i := range row {
			row[i] = i + 1
		}
		rows = append(rows, row)
	}
	return rows
}

// ReverseNumberPattern returns rows n..1, n-1..1, ..., 1.
func ReverseNumberPattern(n int) [][]int {
	rows := make([][]int, 0, max(n, 0))
	for r := n; r >= 1; r-- {
		row := make([]int, r)
		for i := range row {
			row[i] = r - i
		}
		rows = append(rows, row)
	}
	return rows
}

// SumTo returns 1 + 2 + ... + n.
func SumTo(n int) int {
	return n * (n + 1) / 2
}

// MultiplicationTable returns x*1 .. x*upto.
func MultiplicationTable(x, upto int) []int {
	out := make([]int, 0, max(upto, 0))
	for i := 1; i <= upto; i++ {
		out = append(out, x*i)
	}
	return out
}

// FilteredDivisibleBy5 keeps multiples of 5, skipping values above 150 and
// stopping at the first value above 500.
func FilteredDivisibleBy5(nums []int) []int {
	out := []int{}
	for _, v := range nums {
		if v > 500 {
			break
		}
		if v > 150 {
			continue
		}
		if v%5 == 0 {
			out = append(out, v)
		}
	}
	return out
}

// CountDigits returns the number of decimal digits in n, ignoring the sign.
func CountDigits(n int) int {
	s := strconv.Itoa(n)
	if n < 0 {
		return len(s) - 1
	}
	return len(s)
}

// PrimesBetween returns the primes in the closed range between a and b.
func PrimesBetween(a, b int) []int {
	out := []int{}
	for v := min(a, b); v <= max(a, b); v++ {
		if task.IsPrime(v) {
			out = append(out, v)
		}
	}
	return out
}

// Fibonacci returns the first n terms starting 0, 1.
func Fibonacci(n int) []int {
	out := make([]int, 0, max(n, 0))
	a, b := 0, 1
	for range max(n, 0) {
		out = append(out, a)
		a, b = b, a+b
	}
	return out
}

// Factorial returns n! without overflow.
func Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	return new(big.Int).MulRange(1, int64(max(n, 1))), nil
}

// UncommonElements returns the multiset symmetric difference of a and b:
// each value appears |count in a - count in b| times. Values from a come
// first, each group in order of first appearance.
func UncommonElements[T comparable](a, b []T) []T {
	ca, cb := counts(a), counts(b)
	out := []T{}
	emit := func(items []T, mine, theirs map[T]int) {
		seen := make(map[T]bool)
		for _, v := range items {
			if seen[v] {
				continue
			}
			seen[v] = true
			for range mine[v] - theirs[v] {
				out = append(out, v)
			}
		}
	}
	emit(a, ca, cb)
	emit(b, cb, ca)
	return out
}

func counts[T comparable](items []T) map[T]int {
	m := make(map[T]int, len(items))
	for _, v := range items {
		m[v]++
	}
	return m
}

// DigitSum sums the decimal digits of k, ignoring the sign.
func DigitSum(k int) int {
	if k < 0 {
		k = -k
	}
	sum := 0
	for ; k > 0; k /= 10 {
		sum += k % 10
	}
	return sum
}

// PowersOfTwoUpTo returns 2, 4, 8, ... up to and including n.
func PowersOfTwoUpTo(n int) []int {
	out := []int{}
	for p := 2; p <= n && p > 0; p <<= 1 {
		out = append(out, p)
	}
	return out
}
