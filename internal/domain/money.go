package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds to cents, ties away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return RoundMoney(d).StringFixed(2)
}

// ParseMoney parses a decimal amount such as "12.49".
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrInvalidFormat, s)
	}
	return d, nil
}
