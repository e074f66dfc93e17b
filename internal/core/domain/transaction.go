package domain

import "time"

// Transaction is one ledger posting belonging to exactly one account. The
// amount is signed integer cents and always equals the sum of the signed
// amounts of its items.
type Transaction struct {
	TransactionID          string            `json:"transactionID"`  // Primary Key (UUID)
	OrganizationID         string            `json:"organizationID"` // FK -> organizations (NOT NULL)
	AccountID              string            `json:"accountID"`      // FK -> accounts (NOT NULL)
	AmountInCents          int64             `json:"amountInCents"`  // Signed; equals sum of item amounts
	Date                   time.Time         `json:"date"`
	Description            string            `json:"description"`
	CategoryID             *string           `json:"categoryID"`             // Optional FK -> transaction_categories
	ContactID              *string           `json:"contactID"`              // Optional FK -> contacts
	ReimbursementRequestID *string           `json:"reimbursementRequestID"` // Set when the posting offsets an approved reimbursement
	Items                  []TransactionItem `json:"items,omitempty"`
	AuditFields
}

// TransactionItem is a line within a transaction. Its amount carries the sign
// dictated by the item type's direction: the raw user-entered amount is always
// non-negative, multiplied by +1 for IN and -1 for OUT.
type TransactionItem struct {
	ItemID        string `json:"itemID"`        // Primary Key (UUID)
	TransactionID string `json:"transactionID"` // FK -> transactions (NOT NULL)
	TypeID        string `json:"typeID"`        // FK -> transaction_item_types (NOT NULL)
	MethodID      string `json:"methodID"`      // FK -> transaction_item_methods (NOT NULL)
	AmountInCents int64  `json:"amountInCents"` // Signed per type direction
	Description   string `json:"description"`
	AuditFields
}
