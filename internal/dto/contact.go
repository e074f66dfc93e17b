package dto

import (
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// CreateContactRequest defines the payload for creating a contact.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,max=128"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateContactRequest defines the payload for updating a contact.
// Nil fields are left unchanged.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// CreateEngagementRequest records an interaction with a contact.
type CreateEngagementRequest struct {
	Date time.Time `json:"date" binding:"required"`
	Kind string    `json:"kind" binding:"required,max=32"`
	Note string    `json:"note"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID      string    `json:"contactID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EngagementResponse defines the data returned for an engagement.
type EngagementResponse struct {
	EngagementID string    `json:"engagementID"`
	ContactID    string    `json:"contactID"`
	Date         time.Time `json:"date"`
	Kind         string    `json:"kind"`
	Note         string    `json:"note,omitempty"`
}

// ToContactResponse converts a domain contact to its response DTO.
func ToContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:      contact.ContactID,
		OrganizationID: contact.OrganizationID,
		Name:           contact.Name,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Address:        contact.Address,
		Notes:          contact.Notes,
		CreatedAt:      contact.CreatedAt,
	}
}

// ToEngagementResponses converts domain engagements.
func ToEngagementResponses(engagements []domain.Engagement) []EngagementResponse {
	responses := make([]EngagementResponse, len(engagements))
	for i, e := range engagements {
		responses[i] = EngagementResponse{
			EngagementID: e.EngagementID,
			ContactID:    e.ContactID,
			Date:         e.Date,
			Kind:         e.Kind,
			Note:         e.Note,
		}
	}
	return responses
}
