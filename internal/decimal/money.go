package decimal

import (
	"github.com/shopspring/decimal"
)

// EUR has two minor units; every monetary amount in the profile is carried
// and rendered with at most two fractional digits.
const Scale = 2

// Zero is decimal zero
var Zero = decimal.Zero

// FromInt creates a decimal from an int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates a decimal from a float, rounded to cents
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(Scale)
}

// FromString parses a decimal from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error.
// For test fixtures and constant tables only.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders an amount with exactly two fractional digits,
// regardless of the precision it was parsed with ("100" -> "100.00").
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// FitsScale reports whether d has no more than two meaningful fractional
// digits ("1.50" and "1.500" fit, "1.505" does not).
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Percentage computes amount * (percent/100), rounded to cents
func Percentage(amount, percent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return amount.Mul(percent).Div(hundred).Round(Scale)
}

// IsPositive returns true if d is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// IsNonNegative returns true if d is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
