package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	"github.com/grovefund/fund_portal_app/internal/models"
	"github.com/grovefund/fund_portal_app/internal/utils/mapping"
)

type PgxContactRepository struct {
	BaseRepository
}

func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

const contactColumns = `contact_id, organization_id, name, email, phone, address, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanContact(row pgx.Row) (models.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.OrganizationID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveContact inserts a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.OrganizationID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: organization does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save contact %s: %w", m.ContactID, err)
	}
	return nil
}

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	m, err := scanContact(r.Pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	d := mapping.ToDomainContact(m)
	return &d, nil
}

// ListContacts retrieves a paginated list of an organization's contacts.
func (r *PgxContactRepository) ListContacts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE organization_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, mapping.ToDomainContact(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", rows.Err())
	}
	return contacts, nil
}

// UpdateContact updates a contact's details.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, address = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE contact_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", m.ContactID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveEngagement records one interaction with a contact.
func (r *PgxContactRepository) SaveEngagement(ctx context.Context, engagement domain.Engagement) error {
	m := mapping.ToModelEngagement(engagement)
	query := `
		INSERT INTO engagements (engagement_id, contact_id, date, kind, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EngagementID,
		m.ContactID,
		m.Date,
		m.Kind,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: contact does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save engagement %s: %w", m.EngagementID, err)
	}
	return nil
}

// ListEngagementsByContact retrieves a contact's engagement history, newest
// first.
func (r *PgxContactRepository) ListEngagementsByContact(ctx context.Context, contactID string) ([]domain.Engagement, error) {
	query := `
		SELECT engagement_id, contact_id, date, kind, note, created_at, created_by, last_updated_at, last_updated_by
		FROM engagements
		WHERE contact_id = $1
		ORDER BY date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagements for contact %s: %w", contactID, err)
	}
	defer rows.Close()

	engagements := []domain.Engagement{}
	for rows.Next() {
		var m models.Engagement
		if err := rows.Scan(
			&m.EngagementID,
			&m.ContactID,
			&m.Date,
			&m.Kind,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan engagement row: %w", err)
		}
		engagements = append(engagements, mapping.ToDomainEngagement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating engagement rows: %w", rows.Err())
	}
	return engagements, nil
}
