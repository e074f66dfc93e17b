package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	"github.com/grovefund/fund_portal_app/internal/models"
	"github.com/grovefund/fund_portal_app/internal/utils/mapping"
)

type PgxReimbursementRepository struct {
	BaseRepository
}

func newPgxReimbursementRepository(pool *pgxpool.Pool) portsrepo.ReimbursementRepositoryFacade {
	return &PgxReimbursementRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReimbursementRepositoryFacade = (*PgxReimbursementRepository)(nil)

const requestColumns = `request_id, organization_id, account_id, user_id, amount_in_cents, description, approver_note, status, created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (models.ReimbursementRequest, error) {
	var m models.ReimbursementRequest
	err := row.Scan(
		&m.RequestID,
		&m.OrganizationID,
		&m.AccountID,
		&m.UserID,
		&m.AmountInCents,
		&m.Description,
		&m.ApproverNote,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRequest persists a new reimbursement request and attaches its receipts
// in one database transaction.
func (r *PgxReimbursementRepository) SaveRequest(ctx context.Context, request domain.ReimbursementRequest, receiptIDs []string) error {
	m := mapping.ToModelReimbursementRequest(request)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO reimbursement_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, query,
		m.RequestID,
		m.OrganizationID,
		m.AccountID,
		m.UserID,
		m.AmountInCents,
		m.Description,
		m.ApproverNote,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: request %s references a missing row", apperrors.ErrValidation, m.RequestID)
		}
		return fmt.Errorf("failed to insert reimbursement request %s: %w", m.RequestID, err)
	}

	if len(receiptIDs) > 0 {
		linkQuery := `
			UPDATE receipts
			SET request_id = $1
			WHERE receipt_id = ANY($2) AND organization_id = $3 AND request_id IS NULL;
		`
		cmdTag, err := tx.Exec(ctx, linkQuery, m.RequestID, receiptIDs, m.OrganizationID)
		if err != nil {
			return fmt.Errorf("failed to link receipts to request %s: %w", m.RequestID, err)
		}
		if cmdTag.RowsAffected() != int64(len(receiptIDs)) {
			return fmt.Errorf("%w: one or more receipts not found or already attached", apperrors.ErrValidation)
		}
	}

	return r.Commit(ctx, tx)
}

// FindRequestByID retrieves a request with its receipts.
func (r *PgxReimbursementRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ReimbursementRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reimbursement_requests WHERE request_id = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reimbursement request %s: %w", requestID, err)
	}

	request := mapping.ToDomainReimbursementRequest(m)
	receipts, err := r.findReceipts(ctx, requestID)
	if err != nil {
		return nil, err
	}
	request.Receipts = receipts
	return &request, nil
}

func (r *PgxReimbursementRepository) findReceipts(ctx context.Context, requestID string) ([]domain.Receipt, error) {
	query := `
		SELECT receipt_id, organization_id, storage_key, file_name, request_id, transaction_id, created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		WHERE request_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts for request %s: %w", requestID, err)
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		var m models.Receipt
		if err := rows.Scan(
			&m.ReceiptID,
			&m.OrganizationID,
			&m.StorageKey,
			&m.FileName,
			&m.RequestID,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, mapping.ToDomainReceipt(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", rows.Err())
	}
	return receipts, nil
}

// ListRequests retrieves an organization's requests, newest first.
func (r *PgxReimbursementRepository) ListRequests(ctx context.Context, organizationID string, status *domain.ReimbursementStatus, limit int, offset int) ([]domain.ReimbursementRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + requestColumns + `
		FROM reimbursement_requests
		WHERE organization_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	rows, err := r.Pool.Query(ctx, query, organizationID, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursement requests for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	requests := []domain.ReimbursementRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement request row: %w", err)
		}
		requests = append(requests, mapping.ToDomainReimbursementRequest(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reimbursement request rows: %w", rows.Err())
	}
	return requests, nil
}

// UpdateStatus records a status-only transition. Approval never goes through
// here; it needs the atomic posting in ApproveRequest.
func (r *PgxReimbursementRepository) UpdateStatus(ctx context.Context, requestID string, status domain.ReimbursementStatus, approverNote string, userID string, now time.Time) error {
	query := `
		UPDATE reimbursement_requests
		SET status = $2, approver_note = $3, last_updated_at = $4, last_updated_by = $5
		WHERE request_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID, string(status), approverNote, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApproveRequest settles a request: it locks the account row, derives the
// balance under the lock, and either returns
// apperrors.InsufficientFundsError with nothing written, or inserts the
// offsetting transaction and updates the request in the same database
// transaction.
func (r *PgxReimbursementRepository) ApproveRequest(ctx context.Context, request domain.ReimbursementRequest, offsetting domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockAccountsForUpdate(ctx, tx, []string{request.AccountID}); err != nil {
		return err
	}

	balance, err := sumBalanceInTx(ctx, tx, request.AccountID)
	if err != nil {
		return err
	}
	if balance < request.AmountInCents {
		return &apperrors.InsufficientFundsError{
			AccountID:        request.AccountID,
			BalanceInCents:   balance,
			RequestedInCents: request.AmountInCents,
		}
	}

	if err := insertTransactionWithItems(ctx, tx, offsetting); err != nil {
		return err
	}

	m := mapping.ToModelReimbursementRequest(request)
	updateQuery := `
		UPDATE reimbursement_requests
		SET status = $2, approver_note = $3, amount_in_cents = $4, account_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE request_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.RequestID,
		m.Status,
		m.ApproverNote,
		m.AmountInCents,
		m.AccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update approved request %s: %w", m.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SaveReceipt persists an uploaded receipt reference.
func (r *PgxReimbursementRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (receipt_id, organization_id, storage_key, file_name, request_id, transaction_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReceiptID,
		m.OrganizationID,
		m.StorageKey,
		m.FileName,
		m.RequestID,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: receipt references a missing row", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptID, err)
	}
	return nil
}
