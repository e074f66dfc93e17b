package mapping

import (
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/models"
)

// ToModelContact converts a domain Contact to a model Contact
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:      d.ContactID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:      m.ContactID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEngagement converts a domain Engagement to a model Engagement
func ToModelEngagement(d domain.Engagement) models.Engagement {
	return models.Engagement{
		EngagementID: d.EngagementID,
		ContactID:    d.ContactID,
		Date:         d.Date,
		Kind:         d.Kind,
		Note:         d.Note,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEngagement converts a model Engagement to a domain Engagement
func ToDomainEngagement(m models.Engagement) domain.Engagement {
	return domain.Engagement{
		EngagementID: m.EngagementID,
		ContactID:    m.ContactID,
		Date:         m.Date,
		Kind:         m.Kind,
		Note:         m.Note,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
