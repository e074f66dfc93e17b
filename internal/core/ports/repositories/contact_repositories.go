package repositories

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// ContactReader defines read operations for contacts and engagements.
type ContactReader interface {
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Contact, error)
	ListEngagementsByContact(ctx context.Context, contactID string) ([]domain.Engagement, error)
}

// ContactWriter defines write operations for contacts and engagements.
type ContactWriter interface {
	SaveContact(ctx context.Context, contact domain.Contact) error
	UpdateContact(ctx context.Context, contact domain.Contact) error
	SaveEngagement(ctx context.Context, engagement domain.Engagement) error
}

// ContactRepositoryFacade combines contact repository interfaces.
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
