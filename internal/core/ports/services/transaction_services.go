package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// ItemGeneratorSvc computes signed transaction items from raw form lines.
type ItemGeneratorSvc interface {
	// GenerateItems signs each raw item amount by its type's direction and
	// returns the aggregate total. An empty input yields total 0 and no items;
	// an unknown type is a validation failure.
	GenerateItems(ctx context.Context, organizationID string, items []dto.NewItemInput) (int64, []domain.TransactionItem, error)
}

// TransactionReaderSvc defines read operations for ledger postings.
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, organizationID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the posting entry points. Each call produces
// one atomic multi-row write.
type TransactionWriterSvc interface {
	// CreateTransaction posts a simple expense or income entry.
	CreateTransaction(ctx context.Context, organizationID string, input dto.CreateTransactionInput, userID string) (*domain.Transaction, error)

	// Transfer posts the paired debit/credit of an inter-account transfer.
	// Insufficient funds surfaces as *apperrors.InsufficientFundsError with
	// no rows written.
	Transfer(ctx context.Context, organizationID string, input dto.TransferInput, userID string) (*dto.TransferResult, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	ItemGeneratorSvc
	TransactionReaderSvc
	TransactionWriterSvc
}
