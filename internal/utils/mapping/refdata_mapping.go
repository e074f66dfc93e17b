package mapping

import (
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/models"
)

// ToDomainItemType converts a model TransactionItemType to its domain form
func ToDomainItemType(m models.TransactionItemType) domain.TransactionItemType {
	return domain.TransactionItemType{
		TypeID:         m.TypeID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Direction:      domain.Direction(m.Direction),
	}
}

// ToDomainItemMethod converts a model TransactionItemMethod to its domain form
func ToDomainItemMethod(m models.TransactionItemMethod) domain.TransactionItemMethod {
	return domain.TransactionItemMethod{
		MethodID:       m.MethodID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
	}
}

// ToDomainCategory converts a model TransactionCategory to its domain form
func ToDomainCategory(m models.TransactionCategory) domain.TransactionCategory {
	return domain.TransactionCategory{
		CategoryID:     m.CategoryID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
	}
}
