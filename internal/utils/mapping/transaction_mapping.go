package mapping

import (
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Items travel separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		OrganizationID:         d.OrganizationID,
		AccountID:              d.AccountID,
		AmountInCents:          d.AmountInCents,
		Date:                   d.Date,
		Description:            d.Description,
		CategoryID:             d.CategoryID,
		ContactID:              d.ContactID,
		ReimbursementRequestID: d.ReimbursementRequestID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		OrganizationID:         m.OrganizationID,
		AccountID:              m.AccountID,
		AmountInCents:          m.AmountInCents,
		Date:                   m.Date,
		Description:            m.Description,
		CategoryID:             m.CategoryID,
		ContactID:              m.ContactID,
		ReimbursementRequestID: m.ReimbursementRequestID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionItem converts a domain TransactionItem to its model
func ToModelTransactionItem(d domain.TransactionItem) models.TransactionItem {
	return models.TransactionItem{
		ItemID:        d.ItemID,
		TransactionID: d.TransactionID,
		TypeID:        d.TypeID,
		MethodID:      d.MethodID,
		AmountInCents: d.AmountInCents,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionItem converts a model TransactionItem to its domain form
func ToDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		ItemID:        m.ItemID,
		TransactionID: m.TransactionID,
		TypeID:        m.TypeID,
		MethodID:      m.MethodID,
		AmountInCents: m.AmountInCents,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
