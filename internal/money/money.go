// Package money converts between integer minor-unit amounts and display
// strings. All arithmetic elsewhere stays on int64 cents; decimals are only
// used at the formatting edge.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// FromCents renders an amount in minor units as a plain currency string,
// e.g. -150200 -> "-1502.00".
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ToCents parses a decimal currency string into minor units, rounding half
// away from zero. e.g. "150.5" -> 15050.
func ToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FormatPercent renders a fractional rate the way the budget UI shows it:
// at most two fraction digits, trailing zeros trimmed.
// e.g. 0.0699 -> "6.99%", 0.05 -> "5%".
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).Round(2).String() + "%"
}

// Round2 rounds a display-unit amount to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
