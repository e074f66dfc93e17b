package repositories

import (
	"context"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregate queries for reports.
type ReportingRepositoryFacade interface {
	// CategoryTotals sums posted amounts per category for an organization
	// within the given period.
	CategoryTotals(ctx context.Context, organizationID string, from time.Time, to time.Time) ([]domain.CategoryTotal, error)

	// AccountRegister returns the transactions of an account within the given
	// period, oldest first, with running balances populated.
	AccountRegister(ctx context.Context, accountID string, from time.Time, to time.Time) ([]domain.RegisterRow, error)
}
