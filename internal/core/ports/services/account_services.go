package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for an organization.
	ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error)

	// GetAccountBalance derives the account's balance from its transactions.
	GetAccountBalance(ctx context.Context, organizationID string, accountID string, userID string) (int64, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
