package services

import (
	"context"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// ReportingSvcFacade produces read-only reports over posted transactions.
type ReportingSvcFacade interface {
	// CategoryTotals sums posted amounts per category over a period.
	CategoryTotals(ctx context.Context, organizationID string, from time.Time, to time.Time, userID string) ([]domain.CategoryTotal, error)

	// AccountRegister returns an account's register rows, oldest first.
	AccountRegister(ctx context.Context, organizationID string, accountID string, from time.Time, to time.Time, userID string) ([]domain.RegisterRow, error)

	// AccountRegisterXLSX renders the register as a spreadsheet.
	AccountRegisterXLSX(ctx context.Context, organizationID string, accountID string, from time.Time, to time.Time, userID string) ([]byte, error)
}
