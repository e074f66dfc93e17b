package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// OrganizationAuthorizerSvc checks a user's standing within an organization.
// Other services depend on this narrow interface rather than the full facade.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least the required role.
	// Returns apperrors.ErrNotFound when the user is not a member at all and
	// apperrors.ErrForbidden when the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationReaderSvc defines read operations for organizations.
type OrganizationReaderSvc interface {
	GetOrganizationByID(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error)
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
	ListMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organizations.
type OrganizationWriterSvc interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error)
	AddUser(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) error
	UpdateUserRole(ctx context.Context, organizationID string, memberUserID string, req dto.UpdateUserRoleRequest, requestingUserID string) error
}

// OrganizationSvcFacade combines all organization-related service interfaces.
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc
	OrganizationReaderSvc
	OrganizationWriterSvc
}
