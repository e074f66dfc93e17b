package repositories

import (
	"context"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// OrganizationReader defines read operations for organizations and membership.
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUser retrieves organizations the user belongs to.
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)

	// FindUserRole retrieves a user's membership in an organization.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindUserRole(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error)

	// ListUsersInOrganization retrieves the members of an organization.
	ListUsersInOrganization(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)
}

// OrganizationWriter defines write operations for organizations and membership.
type OrganizationWriter interface {
	// SaveOrganization persists a new organization and its creator's ADMIN membership.
	SaveOrganization(ctx context.Context, org domain.Organization, creatorUserID string) error

	// UpdateOrganization updates organization details.
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// AddUserToOrganization adds or updates a membership row.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserRole changes an existing member's role.
	UpdateUserRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error
}

// OrganizationRepositoryFacade combines organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
