package domain

// Account identifies a fund ledger within an organization.
//
// An account never stores a balance: the balance is always derived as the sum
// of amountInCents over the account's transactions. The repository computes it
// on read, and locks the account row when a posting needs a consistent
// balance check.
type Account struct {
	AccountID      string  `json:"accountID"`      // Primary Key (UUID)
	OrganizationID string  `json:"organizationID"` // FK -> organizations (NOT NULL)
	Code           string  `json:"code"`           // Short user-facing fund code, unique per org
	Description    string  `json:"description"`
	TypeID         string  `json:"typeID"`           // FK -> account_types reference
	LinkedUserID   *string `json:"linkedUserID"`     // Optional FK -> users; fund held on behalf of a member
	IsActive       bool    `json:"isActive"`
	AuditFields
}

// AccountType is reference data classifying accounts (e.g. general fund,
// restricted fund, member fund).
type AccountType struct {
	TypeID string `json:"typeID"`
	Name   string `json:"name"`
}
