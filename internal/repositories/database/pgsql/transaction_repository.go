package pgsql

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	"github.com/grovefund/fund_portal_app/internal/models"
	"github.com/grovefund/fund_portal_app/internal/utils/mapping"
	"github.com/grovefund/fund_portal_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, organization_id, account_id, amount_in_cents, date, description, category_id, contact_id, reimbursement_request_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.AccountID,
		&m.AmountInCents,
		&m.Date,
		&m.Description,
		&m.CategoryID,
		&m.ContactID,
		&m.ReimbursementRequestID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertTransactionWithItems writes a transaction header and batches its item
// inserts inside the caller's database transaction. The reimbursement
// repository shares it for approval postings.
func insertTransactionWithItems(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.OrganizationID,
		m.AccountID,
		m.AmountInCents,
		m.Date,
		m.Description,
		m.CategoryID,
		m.ContactID,
		m.ReimbursementRequestID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: transaction %s references a missing row", apperrors.ErrValidation, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO transaction_items (item_id, transaction_id, type_id, method_id, amount_in_cents, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, item := range txn.Items {
		mi := mapping.ToModelTransactionItem(item)
		batch.Queue(itemQuery,
			mi.ItemID,
			mi.TransactionID,
			mi.TypeID,
			mi.MethodID,
			mi.AmountInCents,
			mi.Description,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// lockAccountsForUpdate locks account rows in ascending ID order so concurrent
// transfers touching the same pair cannot deadlock.
func lockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	query := `
		SELECT account_id FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock account rows: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked++
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating locked account rows: %w", rows.Err())
	}
	if locked != len(accountIDs) {
		return apperrors.ErrNotFound
	}
	return nil
}

// sumBalanceInTx derives an account balance under the caller's transaction,
// after the account row has been locked.
func sumBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_in_cents), 0)
		FROM transactions
		WHERE account_id = $1;
	`
	var balance int64
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to sum balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// linkReceipts attaches pre-uploaded receipts to a transaction. Every ID must
// match an unattached receipt of the same organization.
func linkReceipts(ctx context.Context, tx pgx.Tx, organizationID string, transactionID string, receiptIDs []string) error {
	if len(receiptIDs) == 0 {
		return nil
	}
	query := `
		UPDATE receipts
		SET transaction_id = $1
		WHERE receipt_id = ANY($2) AND organization_id = $3 AND transaction_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, receiptIDs, organizationID)
	if err != nil {
		return fmt.Errorf("failed to link receipts to transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() != int64(len(receiptIDs)) {
		return fmt.Errorf("%w: one or more receipts not found or already attached", apperrors.ErrValidation)
	}
	return nil
}

// SaveTransaction persists a transaction with its items and attaches any
// receipts, all in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, receiptIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransactionWithItems(ctx, tx, txn); err != nil {
		return err
	}
	if err := linkReceipts(ctx, tx, txn.OrganizationID, txn.TransactionID, receiptIDs); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveTransfer persists the paired postings of an inter-account transfer. Both
// account rows are locked before the source balance is derived; when the
// source cannot cover the amount nothing is written and
// apperrors.InsufficientFundsError is returned.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockAccountsForUpdate(ctx, tx, []string{out.AccountID, in.AccountID}); err != nil {
		return err
	}

	balance, err := sumBalanceInTx(ctx, tx, out.AccountID)
	if err != nil {
		return err
	}
	// out.AmountInCents is negative; the requested amount is its magnitude.
	requested := -out.AmountInCents
	if balance < requested {
		return &apperrors.InsufficientFundsError{
			AccountID:        out.AccountID,
			BalanceInCents:   balance,
			RequestedInCents: requested,
		}
	}

	if err := insertTransactionWithItems(ctx, tx, out); err != nil {
		return err
	}
	if err := insertTransactionWithItems(ctx, tx, in); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction and its items.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	items, err := r.findItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Items = items
	return &txn, nil
}

// FindTransactionByReimbursementID retrieves the offsetting posting created
// when a reimbursement request was approved.
func (r *PgxTransactionRepository) FindTransactionByReimbursementID(ctx context.Context, requestID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reimbursement_request_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction for reimbursement %s: %w", requestID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	items, err := r.findItems(ctx, txn.TransactionID)
	if err != nil {
		return nil, err
	}
	txn.Items = items
	return &txn, nil
}

func (r *PgxTransactionRepository) findItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	query := `
		SELECT item_id, transaction_id, type_id, method_id, amount_in_cents, description, created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	items := []domain.TransactionItem{}
	for rows.Next() {
		var m models.TransactionItem
		if err := rows.Scan(
			&m.ItemID,
			&m.TransactionID,
			&m.TypeID,
			&m.MethodID,
			&m.AmountInCents,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		items = append(items, mapping.ToDomainTransactionItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", rows.Err())
	}
	return items, nil
}

// ListTransactions retrieves a filtered page of an organization's postings,
// newest first, using (date, created_at) keyset pagination. Items are not
// loaded for listings.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	builder := sq.Select(
		"transaction_id", "organization_id", "account_id", "amount_in_cents", "date", "description",
		"category_id", "contact_id", "reimbursement_request_id",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	).
		From("transactions").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("date DESC", "created_at DESC").
		Limit(uint64(limit + 1)).
		PlaceholderFormat(sq.Dollar)

	if filter.AccountID != "" {
		builder = builder.Where(sq.Eq{"account_id": filter.AccountID})
	}
	if filter.CategoryID != "" {
		builder = builder.Where(sq.Eq{"category_id": filter.CategoryID})
	}
	if filter.ContactID != "" {
		builder = builder.Where(sq.Eq{"contact_id": filter.ContactID})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"date": *filter.DateTo})
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		builder = builder.Where("(date, created_at) < (?, ?)", tokenDate, tokenCreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build transaction listing query: %w", err)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var nextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextToken = &token
	}
	return txns, nextToken, nil
}
