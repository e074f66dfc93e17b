package accounting_test

import (
	"testing"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	signed, err := accounting.SignedAmount(domain.DirectionIn, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), signed)

	signed, err = accounting.SignedAmount(domain.DirectionOut, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(-200), signed)

	signed, err = accounting.SignedAmount(domain.DirectionIn, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), signed)
}

func TestSignedAmountRejectsNegativeRawAmount(t *testing.T) {
	_, err := accounting.SignedAmount(domain.DirectionIn, -1)
	assert.Error(t, err)
}

func TestSignedAmountRejectsUnknownDirection(t *testing.T) {
	_, err := accounting.SignedAmount(domain.Direction("SIDEWAYS"), 100)
	assert.Error(t, err)
}

func TestSumItemAmounts(t *testing.T) {
	items := []domain.TransactionItem{
		{AmountInCents: 5000},
		{AmountInCents: -200},
		{AmountInCents: -300},
	}
	assert.Equal(t, int64(4500), accounting.SumItemAmounts(items))
	assert.Equal(t, int64(0), accounting.SumItemAmounts(nil))
}
