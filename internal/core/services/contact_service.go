package services

import (
	"context"
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

// contactService manages contacts and their engagement history.
type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
	authorizer  portssvc.OrganizationAuthorizerSvc
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.ContactSvcFacade {
	return &contactService{
		contactRepo: contactRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

// CreateContact creates a contact within the organization.
func (s *contactService) CreateContact(ctx context.Context, organizationID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	contact := domain.Contact{
		ContactID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		logger.Error("Failed to save contact", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	logger.Info("Contact created", slog.String("contact_id", contact.ContactID))
	return &contact, nil
}

// GetContactByID retrieves a contact within the organization.
func (s *contactService) GetContactByID(ctx context.Context, organizationID string, contactID string, userID string) (*domain.Contact, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findOrgContact(ctx, organizationID, contactID)
}

// ListContacts retrieves a paginated list of the organization's contacts.
func (s *contactService) ListContacts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Contact, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	contacts, err := s.contactRepo.ListContacts(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// UpdateContact updates a contact's details.
func (s *contactService) UpdateContact(ctx context.Context, organizationID string, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	contact, err := s.findOrgContact(ctx, organizationID, contactID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		contact.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		contact.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		contact.Address = *req.Address
		updated = true
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return contact, nil
	}

	contact.LastUpdatedAt = time.Now()
	contact.LastUpdatedBy = userID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		logger.Error("Failed to update contact", slog.String("error", err.Error()), slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	logger.Info("Contact updated", slog.String("contact_id", contactID))
	return contact, nil
}

// AddEngagement records an interaction with a contact.
func (s *contactService) AddEngagement(ctx context.Context, organizationID string, contactID string, req dto.CreateEngagementRequest, userID string) (*domain.Engagement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if _, err := s.findOrgContact(ctx, organizationID, contactID); err != nil {
		return nil, err
	}

	now := time.Now()
	engagement := domain.Engagement{
		EngagementID: uuid.NewString(),
		ContactID:    contactID,
		Date:         req.Date,
		Kind:         req.Kind,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.contactRepo.SaveEngagement(ctx, engagement); err != nil {
		logger.Error("Failed to save engagement", slog.String("error", err.Error()), slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to add engagement: %w", err)
	}

	logger.Info("Engagement added", slog.String("engagement_id", engagement.EngagementID), slog.String("contact_id", contactID))
	return &engagement, nil
}

// ListEngagements retrieves a contact's engagement history.
func (s *contactService) ListEngagements(ctx context.Context, organizationID string, contactID string, userID string) ([]domain.Engagement, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findOrgContact(ctx, organizationID, contactID); err != nil {
		return nil, err
	}
	engagements, err := s.contactRepo.ListEngagementsByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}
	return engagements, nil
}

// findOrgContact loads a contact and hides contacts of other organizations.
func (s *contactService) findOrgContact(ctx context.Context, organizationID string, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}
