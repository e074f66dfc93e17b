package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// CategoryTotals sums posted amounts per category over the period.
// Uncategorized postings are excluded.
func (r *PgxReportingRepository) CategoryTotals(ctx context.Context, organizationID string, from time.Time, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(t.amount_in_cents), 0)
		FROM transactions t
		JOIN transaction_categories c ON c.category_id = t.category_id
		WHERE t.organization_id = $1 AND t.date >= $2 AND t.date <= $3
		GROUP BY c.category_id, c.name
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.TotalInCents); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", rows.Err())
	}
	return totals, nil
}

// AccountRegister returns the account's postings for the period, oldest first,
// with running balances. The running balance starts from the sum of everything
// posted before the period so the first row continues from real history.
func (r *PgxReportingRepository) AccountRegister(ctx context.Context, accountID string, from time.Time, to time.Time) ([]domain.RegisterRow, error) {
	openingQuery := `
		SELECT COALESCE(SUM(amount_in_cents), 0)
		FROM transactions
		WHERE account_id = $1 AND date < $2;
	`
	var opening int64
	if err := r.Pool.QueryRow(ctx, openingQuery, accountID, from).Scan(&opening); err != nil {
		return nil, fmt.Errorf("failed to derive opening balance for account %s: %w", accountID, err)
	}

	query := `
		SELECT t.transaction_id, t.date, t.description, COALESCE(c.name, ''), COALESCE(p.name, ''), t.amount_in_cents
		FROM transactions t
		LEFT JOIN transaction_categories c ON c.category_id = t.category_id
		LEFT JOIN contacts p ON p.contact_id = t.contact_id
		WHERE t.account_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date, t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query register for account %s: %w", accountID, err)
	}
	defer rows.Close()

	running := opening
	register := []domain.RegisterRow{}
	for rows.Next() {
		var row domain.RegisterRow
		if err := rows.Scan(
			&row.TransactionID,
			&row.Date,
			&row.Description,
			&row.CategoryName,
			&row.ContactName,
			&row.AmountInCents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan register row: %w", err)
		}
		running += row.AmountInCents
		row.RunningInCents = running
		register = append(register, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating register rows: %w", rows.Err())
	}
	return register, nil
}
