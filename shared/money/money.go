// Package money holds the decimal helpers shared by pricing and settlement.
// Amounts never pass through float64.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const cents = 2

// Round2 rounds half away from zero to two places. Amounts here are never
// negative, so this is half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(cents)
}

// Parse reads a decimal string such as "0.15" or "49.90".
func Parse(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", value, err)
	}

	return d, nil
}

// ParseAll parses every value, failing on the first bad one.
func ParseAll(values []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))

	for _, v := range values {
		d, err := Parse(v)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}
