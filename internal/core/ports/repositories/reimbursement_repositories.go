package repositories

import (
	"context"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// ReimbursementReader defines read operations for reimbursement requests.
type ReimbursementReader interface {
	// FindRequestByID retrieves a request with its receipts.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ReimbursementRequest, error)

	// ListRequests retrieves requests for an organization, optionally filtered
	// by status, newest first with offset pagination.
	ListRequests(ctx context.Context, organizationID string, status *domain.ReimbursementStatus, limit int, offset int) ([]domain.ReimbursementRequest, error)
}

// ReimbursementWriter defines write operations for reimbursement requests.
type ReimbursementWriter interface {
	// SaveRequest persists a new request and links its receipts.
	SaveRequest(ctx context.Context, request domain.ReimbursementRequest, receiptIDs []string) error

	// UpdateStatus records a status-only transition (reject, void, reopen).
	UpdateStatus(ctx context.Context, requestID string, status domain.ReimbursementStatus, approverNote string, userID string, now time.Time) error

	// ApproveRequest performs the atomic approval unit: lock the account row,
	// derive its balance, and either return
	// apperrors.InsufficientFundsError with nothing written, or insert the
	// offsetting transaction (with its single item) AND update the request
	// status and approver note in the same database transaction.
	ApproveRequest(ctx context.Context, request domain.ReimbursementRequest, offsetting domain.Transaction) error

	// SaveReceipt persists an uploaded receipt reference.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
}

// ReimbursementRepositoryFacade combines reimbursement repository interfaces.
type ReimbursementRepositoryFacade interface {
	ReimbursementReader
	ReimbursementWriter
}
