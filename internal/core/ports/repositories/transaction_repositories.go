package repositories

import (
	"context"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint"; the repository builds the query dynamically.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
	ContactID  string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	NextToken  *string
}

// TransactionReader defines read operations for ledger postings.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction and its items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReimbursementID retrieves the offsetting transaction
	// created when a reimbursement request was approved, if any.
	FindTransactionByReimbursementID(ctx context.Context, requestID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated list of
	// transactions for an organization, newest first.
	ListTransactions(ctx context.Context, organizationID string, filter TransactionFilter) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger postings. Every method
// is a single all-or-nothing unit: either every row it describes persists or
// none do.
type TransactionWriter interface {
	// SaveTransaction persists one transaction with its items and associates
	// any pre-existing receipts, in one database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, receiptIDs []string) error

	// SaveTransfer persists the paired postings of an inter-account transfer.
	// It locks both account rows, derives the source balance inside the same
	// database transaction and returns apperrors.InsufficientFundsError
	// without writing anything when the source cannot cover the amount.
	SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
