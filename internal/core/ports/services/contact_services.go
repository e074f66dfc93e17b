package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// ContactSvcFacade manages contacts and their engagement history.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, organizationID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, organizationID string, contactID string, userID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, organizationID string, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error)

	AddEngagement(ctx context.Context, organizationID string, contactID string, req dto.CreateEngagementRequest, userID string) (*domain.Engagement, error)
	ListEngagements(ctx context.Context, organizationID string, contactID string, userID string) ([]domain.Engagement, error)
}
