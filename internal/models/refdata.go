package models

// TransactionItemType is a reference row; organization_id is NULL for the
// seeded global defaults.
type TransactionItemType struct {
	TypeID         string  `db:"type_id"`
	OrganizationID *string `db:"organization_id"`
	Name           string  `db:"name"`
	Direction      string  `db:"direction"`
}

// TransactionItemMethod is a reference row for payment methods.
type TransactionItemMethod struct {
	MethodID       string  `db:"method_id"`
	OrganizationID *string `db:"organization_id"`
	Name           string  `db:"name"`
}

// TransactionCategory is a reference row for reporting categories.
type TransactionCategory struct {
	CategoryID     string  `db:"category_id"`
	OrganizationID *string `db:"organization_id"`
	Name           string  `db:"name"`
}
