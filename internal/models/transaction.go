package models

import "time"

// Transaction is the persisted ledger posting row. AmountInCents is signed and
// equals the sum of the item rows' amounts.
type Transaction struct {
	TransactionID          string    `db:"transaction_id"`
	OrganizationID         string    `db:"organization_id"`
	AccountID              string    `db:"account_id"`
	AmountInCents          int64     `db:"amount_in_cents"`
	Date                   time.Time `db:"date"`
	Description            string    `db:"description"`
	CategoryID             *string   `db:"category_id"`
	ContactID              *string   `db:"contact_id"`
	ReimbursementRequestID *string   `db:"reimbursement_request_id"`
	AuditFields
}

// TransactionItem is one persisted line within a transaction.
type TransactionItem struct {
	ItemID        string `db:"item_id"`
	TransactionID string `db:"transaction_id"`
	TypeID        string `db:"type_id"`
	MethodID      string `db:"method_id"`
	AmountInCents int64  `db:"amount_in_cents"`
	Description   string `db:"description"`
	AuditFields
}
