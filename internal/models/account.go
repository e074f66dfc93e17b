package models

// Account is the persisted fund account row. There is no balance column:
// balances are derived from the transactions table.
type Account struct {
	AccountID      string  `db:"account_id"`
	OrganizationID string  `db:"organization_id"`
	Code           string  `db:"code"`
	Description    string  `db:"description"`
	TypeID         string  `db:"type_id"`
	LinkedUserID   *string `db:"linked_user_id"`
	IsActive       bool    `db:"is_active"`
	AuditFields
}

// AccountType is an account classification reference row.
type AccountType struct {
	TypeID string `db:"type_id"`
	Name   string `db:"name"`
}
