package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDollarsToCents converts a user-entered dollar string ("$12.34",
// "1,234.56") into integer cents. Everything past this edge works in cents
// only; no decimal strings reach the core.
func ParseDollarsToCents(input string) (int64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", input)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", input)
	}
	return cents.IntPart(), nil
}

// FormatCentsAsDollars renders integer cents as a plain dollar string
// ("-12.34"). Used for report output, never for arithmetic.
func FormatCentsAsDollars(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
