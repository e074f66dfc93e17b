package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	"github.com/grovefund/fund_portal_app/internal/models"
	"github.com/grovefund/fund_portal_app/internal/utils/mapping"
)

type PgxRefDataRepository struct {
	BaseRepository
}

func newPgxRefDataRepository(pool *pgxpool.Pool) portsrepo.RefDataRepositoryFacade {
	return &PgxRefDataRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RefDataRepositoryFacade = (*PgxRefDataRepository)(nil)

// ListItemTypes returns the organization's item types together with the seeded
// global defaults (NULL organization_id). Global rows sort first so org-scoped
// rows of the same name win when callers resolve by name last-match.
func (r *PgxRefDataRepository) ListItemTypes(ctx context.Context, organizationID string) ([]domain.TransactionItemType, error) {
	query := `
		SELECT type_id, organization_id, name, direction
		FROM transaction_item_types
		WHERE organization_id = $1 OR organization_id IS NULL
		ORDER BY organization_id NULLS FIRST, name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item types for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	types := []domain.TransactionItemType{}
	for rows.Next() {
		var m models.TransactionItemType
		if err := rows.Scan(&m.TypeID, &m.OrganizationID, &m.Name, &m.Direction); err != nil {
			return nil, fmt.Errorf("failed to scan item type row: %w", err)
		}
		types = append(types, mapping.ToDomainItemType(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item type rows: %w", rows.Err())
	}
	return types, nil
}

// ListItemMethods returns the organization's payment methods together with the
// seeded global defaults.
func (r *PgxRefDataRepository) ListItemMethods(ctx context.Context, organizationID string) ([]domain.TransactionItemMethod, error) {
	query := `
		SELECT method_id, organization_id, name
		FROM transaction_item_methods
		WHERE organization_id = $1 OR organization_id IS NULL
		ORDER BY organization_id NULLS FIRST, name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item methods for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	methods := []domain.TransactionItemMethod{}
	for rows.Next() {
		var m models.TransactionItemMethod
		if err := rows.Scan(&m.MethodID, &m.OrganizationID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan item method row: %w", err)
		}
		methods = append(methods, mapping.ToDomainItemMethod(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item method rows: %w", rows.Err())
	}
	return methods, nil
}

// ListCategories returns the organization's categories together with the
// seeded global defaults.
func (r *PgxRefDataRepository) ListCategories(ctx context.Context, organizationID string) ([]domain.TransactionCategory, error) {
	query := `
		SELECT category_id, organization_id, name
		FROM transaction_categories
		WHERE organization_id = $1 OR organization_id IS NULL
		ORDER BY organization_id NULLS FIRST, name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	categories := []domain.TransactionCategory{}
	for rows.Next() {
		var m models.TransactionCategory
		if err := rows.Scan(&m.CategoryID, &m.OrganizationID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}

// ListAccountTypes returns the account type reference rows. These are global
// only.
func (r *PgxRefDataRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	query := `SELECT type_id, name FROM account_types ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account types: %w", err)
	}
	defer rows.Close()

	types := []domain.AccountType{}
	for rows.Next() {
		var m models.AccountType
		if err := rows.Scan(&m.TypeID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		types = append(types, domain.AccountType{TypeID: m.TypeID, Name: m.Name})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", rows.Err())
	}
	return types, nil
}

// SaveItemType inserts an org-scoped item type.
func (r *PgxRefDataRepository) SaveItemType(ctx context.Context, itemType domain.TransactionItemType) error {
	query := `
		INSERT INTO transaction_item_types (type_id, organization_id, name, direction)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, itemType.TypeID, itemType.OrganizationID, itemType.Name, string(itemType.Direction))
	if err != nil {
		return refDataInsertError("item type", itemType.Name, err)
	}
	return nil
}

// SaveItemMethod inserts an org-scoped payment method.
func (r *PgxRefDataRepository) SaveItemMethod(ctx context.Context, method domain.TransactionItemMethod) error {
	query := `
		INSERT INTO transaction_item_methods (method_id, organization_id, name)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, method.MethodID, method.OrganizationID, method.Name)
	if err != nil {
		return refDataInsertError("item method", method.Name, err)
	}
	return nil
}

// SaveCategory inserts an org-scoped reporting category.
func (r *PgxRefDataRepository) SaveCategory(ctx context.Context, category domain.TransactionCategory) error {
	query := `
		INSERT INTO transaction_categories (category_id, organization_id, name)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, category.CategoryID, category.OrganizationID, category.Name)
	if err != nil {
		return refDataInsertError("category", category.Name, err)
	}
	return nil
}

func refDataInsertError(kind string, name string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s %q already exists", apperrors.ErrDuplicate, kind, name)
		case "23503":
			return fmt.Errorf("%w: organization does not exist", apperrors.ErrValidation)
		}
	}
	return fmt.Errorf("failed to save %s %q: %w", kind, name, err)
}
