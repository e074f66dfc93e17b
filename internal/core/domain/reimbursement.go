package domain

// ReimbursementStatus is the lifecycle state of a reimbursement request.
// The transition action submitted by a client IS the target status.
type ReimbursementStatus string

const (
	ReimbursementPending  ReimbursementStatus = "PENDING"
	ReimbursementApproved ReimbursementStatus = "APPROVED"
	ReimbursementRejected ReimbursementStatus = "REJECTED"
	ReimbursementVoid     ReimbursementStatus = "VOID"
)

// CanTransitionTo reports whether a status change is legal. PENDING may move
// to any terminal status; any terminal status may be reopened back to PENDING.
func (s ReimbursementStatus) CanTransitionTo(target ReimbursementStatus) bool {
	if s == target {
		return false
	}
	switch s {
	case ReimbursementPending:
		return target == ReimbursementApproved || target == ReimbursementRejected || target == ReimbursementVoid
	case ReimbursementApproved, ReimbursementRejected, ReimbursementVoid:
		return target == ReimbursementPending
	}
	return false
}

// ReimbursementRequest is a member's request to be paid back out of a fund.
// AmountInCents is always positive; the offsetting ledger transaction created
// on approval is negative.
type ReimbursementRequest struct {
	RequestID      string              `json:"requestID"`      // Primary Key (UUID)
	OrganizationID string              `json:"organizationID"` // FK -> organizations (NOT NULL)
	AccountID      string              `json:"accountID"`      // FK -> accounts; the fund to draw from
	UserID         string              `json:"userID"`         // FK -> users; the requester
	AmountInCents  int64               `json:"amountInCents"`  // Always positive
	Description    string              `json:"description"`
	ApproverNote   string              `json:"approverNote"`
	Status         ReimbursementStatus `json:"status"`
	Receipts       []Receipt           `json:"receipts,omitempty"`
	AuditFields
}

// Receipt references an uploaded file attached to a reimbursement request or
// a transaction. Upload and presigning happen outside this service; only the
// storage key is kept here.
type Receipt struct {
	ReceiptID      string  `json:"receiptID"` // Primary Key (UUID)
	OrganizationID string  `json:"organizationID"`
	StorageKey     string  `json:"storageKey"` // Object key in the upload bucket
	FileName       string  `json:"fileName"`
	RequestID      *string `json:"requestID"`     // FK -> reimbursement_requests, nullable
	TransactionID  *string `json:"transactionID"` // FK -> transactions, nullable
	AuditFields
}
