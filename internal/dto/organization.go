package dto

import (
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// CreateOrganizationRequest defines the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
}

// UpdateOrganizationRequest defines the payload for updating an organization.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddUserToOrganizationRequest adds a member with a role.
type AddUserToOrganizationRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserRoleRequest changes an existing member's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY REMOVED"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MemberResponse defines one membership row.
type MemberResponse struct {
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ToOrganizationResponse converts a domain organization.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		Description:    org.Description,
		IsActive:       org.IsActive,
		CreatedAt:      org.CreatedAt,
	}
}

// ToMemberResponses converts domain membership rows.
func ToMemberResponses(members []domain.UserOrganization) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = MemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
