package domain

// Direction indicates whether a transaction item type adds to or subtracts
// from the parent transaction total. It is the sole source of truth for the
// sign of an item's amount.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// TransactionItemType classifies a transaction line and carries its direction.
// Rows with a nil OrganizationID are global defaults visible to every org;
// lookups always return the union of global and org-scoped rows.
type TransactionItemType struct {
	TypeID         string    `json:"typeID"`
	OrganizationID *string   `json:"organizationID"` // nil for global defaults
	Name           string    `json:"name"`
	Direction      Direction `json:"direction"`
}

// TransactionItemMethod describes how money moved (cash, check, card, ...).
type TransactionItemMethod struct {
	MethodID       string  `json:"methodID"`
	OrganizationID *string `json:"organizationID"` // nil for global defaults
	Name           string  `json:"name"`
}

// TransactionCategory groups transactions for reporting.
type TransactionCategory struct {
	CategoryID     string  `json:"categoryID"`
	OrganizationID *string `json:"organizationID"` // nil for global defaults
	Name           string  `json:"name"`
}

// Well-known global reference data names, seeded by migration. Transfers and
// reimbursement approvals post against these.
const (
	ItemTypeTransferOut   = "Transfer_Out"
	ItemTypeTransferIn    = "Transfer_In"
	ItemTypeOtherOutgoing = "Other_Outgoing"

	ItemMethodOther = "Other"

	CategoryTransferLoss = "Internal Transfer Loss"
	CategoryTransferGain = "Internal Transfer Gain"
)
