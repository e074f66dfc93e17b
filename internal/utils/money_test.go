package utils_test

import (
	"testing"

	"github.com/grovefund/fund_portal_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDollarsToCents(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int64
	}{
		{"plain", "12.34", 1234},
		{"dollar sign", "$12.34", 1234},
		{"thousands separator", "$1,234.56", 123456},
		{"whole dollars", "50", 5000},
		{"single decimal place", "0.5", 50},
		{"zero", "0", 0},
		{"leading whitespace", " 7.25", 725},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cents, err := utils.ParseDollarsToCents(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cents)
		})
	}
}

func TestParseDollarsToCentsRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "$", "abc", "12.345", "-5.00", "$-1"} {
		t.Run(input, func(t *testing.T) {
			_, err := utils.ParseDollarsToCents(input)
			assert.Error(t, err)
		})
	}
}

func TestFormatCentsAsDollars(t *testing.T) {
	assert.Equal(t, "12.34", utils.FormatCentsAsDollars(1234))
	assert.Equal(t, "-0.50", utils.FormatCentsAsDollars(-50))
	assert.Equal(t, "0.00", utils.FormatCentsAsDollars(0))
}
