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

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// SaveOrganization inserts the organization and the creator's ADMIN membership
// in one database transaction.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creatorUserID string) error {
	modelOrg := mapping.ToModelOrganization(org)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	orgQuery := `
		INSERT INTO organizations (organization_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, orgQuery,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.IsActive,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert organization %s: %w", modelOrg.OrganizationID, err)
	}

	memberQuery := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, memberQuery,
		creatorUserID,
		modelOrg.OrganizationID,
		string(domain.RoleAdmin),
		modelOrg.CreatedAt,
		modelOrg.CreatedAt,
		creatorUserID,
		modelOrg.CreatedAt,
		creatorUserID,
	); err != nil {
		return fmt.Errorf("failed to insert creator membership for organization %s: %w", modelOrg.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	d := mapping.ToDomainOrganization(m)
	return &d, nil
}

// ListOrganizationsByUser retrieves organizations the user is a member of,
// excluding memberships in the REMOVED state.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.description, o.is_active, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON uo.organization_id = o.organization_id
		WHERE uo.user_id = $1 AND uo.role <> 'REMOVED'
		ORDER BY o.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations for user %s: %w", userID, err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var m models.Organization
		if err := rows.Scan(
			&m.OrganizationID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, mapping.ToDomainOrganization(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", rows.Err())
	}
	return orgs, nil
}

// FindUserRole retrieves a user's membership in an organization.
func (r *PgxOrganizationRepository) FindUserRole(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, uo.organization_id, uo.role, uo.joined_at, u.name
		FROM user_organizations uo
		JOIN users u ON u.user_id = uo.user_id
		WHERE uo.user_id = $1 AND uo.organization_id = $2;
	`
	var membership domain.UserOrganization
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&membership.UserID,
		&membership.OrganizationID,
		&role,
		&membership.JoinedAt,
		&membership.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s in organization %s: %w", userID, organizationID, err)
	}
	membership.Role = domain.UserOrganizationRole(role)
	return &membership, nil
}

// ListUsersInOrganization retrieves the members of an organization.
func (r *PgxOrganizationRepository) ListUsersInOrganization(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, uo.organization_id, uo.role, uo.joined_at, u.name
		FROM user_organizations uo
		JOIN users u ON u.user_id = uo.user_id
		WHERE uo.organization_id = $1 AND uo.role <> 'REMOVED'
		ORDER BY u.name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	members := []domain.UserOrganization{}
	for rows.Next() {
		var membership domain.UserOrganization
		var role string
		if err := rows.Scan(
			&membership.UserID,
			&membership.OrganizationID,
			&role,
			&membership.JoinedAt,
			&membership.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		membership.Role = domain.UserOrganizationRole(role)
		members = append(members, membership)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", rows.Err())
	}
	return members, nil
}

// UpdateOrganization updates organization details.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	modelOrg := mapping.ToModelOrganization(org)
	query := `
		UPDATE organizations
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.IsActive,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", modelOrg.OrganizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddUserToOrganization adds a membership row, or revives a previously
// REMOVED one with the new role.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $4, $1, $4, $1)
		ON CONFLICT (user_id, organization_id)
		DO UPDATE SET role = EXCLUDED.role, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by
		WHERE user_organizations.role = 'REMOVED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: user or organization does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to add user %s to organization %s: %w", membership.UserID, membership.OrganizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Conflict hit an active membership.
		return fmt.Errorf("%w: user is already a member", apperrors.ErrDuplicate)
	}
	return nil
}

// UpdateUserRole changes an existing member's role.
func (r *PgxOrganizationRepository) UpdateUserRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error {
	query := `
		UPDATE user_organizations
		SET role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, organizationID, string(role), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update role for user %s in organization %s: %w", userID, organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
