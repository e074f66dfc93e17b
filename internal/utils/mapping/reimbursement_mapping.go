package mapping

import (
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/models"
)

// ToModelReimbursementRequest converts a domain request to its model.
// Receipts travel separately.
func ToModelReimbursementRequest(d domain.ReimbursementRequest) models.ReimbursementRequest {
	return models.ReimbursementRequest{
		RequestID:      d.RequestID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		UserID:         d.UserID,
		AmountInCents:  d.AmountInCents,
		Description:    d.Description,
		ApproverNote:   d.ApproverNote,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReimbursementRequest converts a model request to its domain form
func ToDomainReimbursementRequest(m models.ReimbursementRequest) domain.ReimbursementRequest {
	return domain.ReimbursementRequest{
		RequestID:      m.RequestID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		UserID:         m.UserID,
		AmountInCents:  m.AmountInCents,
		Description:    m.Description,
		ApproverNote:   m.ApproverNote,
		Status:         domain.ReimbursementStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReceipt converts a domain Receipt to its model
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:      d.ReceiptID,
		OrganizationID: d.OrganizationID,
		StorageKey:     d.StorageKey,
		FileName:       d.FileName,
		RequestID:      d.RequestID,
		TransactionID:  d.TransactionID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a model Receipt to its domain form
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:      m.ReceiptID,
		OrganizationID: m.OrganizationID,
		StorageKey:     m.StorageKey,
		FileName:       m.FileName,
		RequestID:      m.RequestID,
		TransactionID:  m.TransactionID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
