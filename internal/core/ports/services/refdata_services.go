package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// RefDataSvcFacade exposes org-scoped reference data: item types (with their
// directions), item methods, categories and account types. Listings always
// return the union of global defaults and the organization's own rows.
type RefDataSvcFacade interface {
	ListItemTypes(ctx context.Context, organizationID string, userID string) ([]domain.TransactionItemType, error)
	ListItemMethods(ctx context.Context, organizationID string, userID string) ([]domain.TransactionItemMethod, error)
	ListCategories(ctx context.Context, organizationID string, userID string) ([]domain.TransactionCategory, error)
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)

	CreateItemType(ctx context.Context, organizationID string, req dto.CreateItemTypeRequest, userID string) (*domain.TransactionItemType, error)
	CreateItemMethod(ctx context.Context, organizationID string, req dto.CreateItemMethodRequest, userID string) (*domain.TransactionItemMethod, error)
	CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, userID string) (*domain.TransactionCategory, error)
}
