package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// roleRank orders roles by privilege for authorization checks.
var roleRank = map[domain.UserOrganizationRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

// organizationService handles business logic for organizations and memberships.
type organizationService struct {
	orgRepo  portsrepo.OrganizationRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// organization. Non-members get ErrNotFound to obscure the org's existence.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error {
	membership, err := s.orgRepo.FindUserRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if membership.Role == domain.RoleRemoved {
		return apperrors.ErrForbidden
	}
	if roleRank[membership.Role] < roleRank[requiredRole] {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateOrganization creates a new organization and makes the creator the
// initial admin. Both rows are written by the repository in one unit.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org, creatorUserID); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("creator_user_id", creatorUserID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization the requesting user belongs to.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string, requestingUserID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	return org, nil
}

// ListUserOrganizations retrieves the organizations the user is a member of.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// ListMembers retrieves the members of an organization.
func (s *organizationService) ListMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListUsersInOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateOrganization updates organization details. Admin only.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		org.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		org.Description = *req.Description
		updated = true
	}
	if !updated {
		return org, nil
	}

	org.LastUpdatedAt = time.Now()
	org.LastUpdatedBy = requestingUserID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		logger.Error("Failed to update organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	logger.Info("Organization updated", slog.String("organization_id", organizationID))
	return org, nil
}

// AddUser adds a member to an organization. Admin only.
func (s *organizationService) AddUser(ctx context.Context, organizationID string, req dto.AddUserToOrganizationRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	// The target user must exist before a membership row can reference them.
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, req.UserID)
		}
		return fmt.Errorf("failed to validate user: %w", err)
	}

	membership := domain.UserOrganization{
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           domain.UserOrganizationRole(req.Role),
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.AddUserToOrganization(ctx, membership); err != nil {
		logger.Error("Failed to add user to organization", slog.String("error", err.Error()), slog.String("target_user_id", req.UserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add user: %w", err)
	}

	logger.Info("User added to organization", slog.String("target_user_id", req.UserID), slog.String("organization_id", organizationID), slog.String("role", req.Role))
	return nil
}

// UpdateUserRole changes an existing member's role. Admin only; admins cannot
// change their own role, which keeps every org with at least one admin.
func (s *organizationService) UpdateUserRole(ctx context.Context, organizationID string, memberUserID string, req dto.UpdateUserRoleRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if memberUserID == requestingUserID {
		return fmt.Errorf("%w: cannot change your own role", apperrors.ErrValidation)
	}

	if _, err := s.orgRepo.FindUserRole(ctx, memberUserID, organizationID); err != nil {
		return err
	}

	now := time.Now()
	if err := s.orgRepo.UpdateUserRole(ctx, memberUserID, organizationID, domain.UserOrganizationRole(req.Role), requestingUserID, now); err != nil {
		logger.Error("Failed to update user role", slog.String("error", err.Error()), slog.String("member_user_id", memberUserID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to update role: %w", err)
	}

	logger.Info("User role updated", slog.String("member_user_id", memberUserID), slog.String("organization_id", organizationID), slog.String("role", req.Role))
	return nil
}
