package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). Integer arithmetic keeps cart
// totals exact across any sequence of adds and removes.
type Money int64

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Cents builds a Money value from minor units.
func Cents(c int64) Money {
	return Money(c)
}

// ParseMoney parses a decimal string such as "20.00" or "5". More than two
// fractional digits is an error rather than a silent rounding.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("parse money %q: more than two decimal places", s)
	}
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("parse money %q: out of range", s)
	}
	return Money(cents.IntPart()), nil
}

// MustParseMoney is ParseMoney for compiled-in literals.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Times returns m multiplied by a quantity.
func (m Money) Times(quantity int) Money {
	return m * Money(quantity)
}

// Decimal returns m as a decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders m fixed to two decimal places, e.g. "20.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
