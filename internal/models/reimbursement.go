package models

// ReimbursementRequest is the persisted request row.
type ReimbursementRequest struct {
	RequestID      string `db:"request_id"`
	OrganizationID string `db:"organization_id"`
	AccountID      string `db:"account_id"`
	UserID         string `db:"user_id"`
	AmountInCents  int64  `db:"amount_in_cents"`
	Description    string `db:"description"`
	ApproverNote   string `db:"approver_note"`
	Status         string `db:"status"`
	AuditFields
}

// Receipt is the persisted receipt reference row.
type Receipt struct {
	ReceiptID      string  `db:"receipt_id"`
	OrganizationID string  `db:"organization_id"`
	StorageKey     string  `db:"storage_key"`
	FileName       string  `db:"file_name"`
	RequestID      *string `db:"request_id"`
	TransactionID  *string `db:"transaction_id"`
	AuditFields
}
