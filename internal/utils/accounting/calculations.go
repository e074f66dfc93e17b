package accounting

import (
	"fmt"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// SignedAmount applies the sign dictated by an item type's direction to a raw
// non-negative amount. This is the single place the IN/OUT convention lives:
// IN adds to the transaction total, OUT subtracts from it.
func SignedAmount(direction domain.Direction, amountInCents int64) (int64, error) {
	if amountInCents < 0 {
		return 0, fmt.Errorf("raw amount must not be negative, got %d", amountInCents)
	}
	switch direction {
	case domain.DirectionIn:
		return amountInCents, nil
	case domain.DirectionOut:
		return -amountInCents, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", direction)
	}
}

// SumItemAmounts totals the signed amounts of a transaction's items.
func SumItemAmounts(items []domain.TransactionItem) int64 {
	var total int64
	for _, item := range items {
		total += item.AmountInCents
	}
	return total
}
