package repositories

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// RefDataReader defines lookups over org-scoped reference data. Every List
// method returns the union of the organization's own rows and the seeded
// global defaults (rows with a NULL organization id).
type RefDataReader interface {
	ListItemTypes(ctx context.Context, organizationID string) ([]domain.TransactionItemType, error)
	ListItemMethods(ctx context.Context, organizationID string) ([]domain.TransactionItemMethod, error)
	ListCategories(ctx context.Context, organizationID string) ([]domain.TransactionCategory, error)
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)
}

// RefDataWriter defines creation of org-scoped reference data rows.
type RefDataWriter interface {
	SaveItemType(ctx context.Context, itemType domain.TransactionItemType) error
	SaveItemMethod(ctx context.Context, method domain.TransactionItemMethod) error
	SaveCategory(ctx context.Context, category domain.TransactionCategory) error
}

// RefDataRepositoryFacade combines reference data repository interfaces.
type RefDataRepositoryFacade interface {
	RefDataReader
	RefDataWriter
}
