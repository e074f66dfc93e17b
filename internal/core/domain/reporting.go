package domain

import "time"

// CategoryTotal is an aggregate of posted amounts per category over a period.
type CategoryTotal struct {
	CategoryID   string `json:"categoryID"`
	CategoryName string `json:"categoryName"`
	TotalInCents int64  `json:"totalInCents"`
}

// RegisterRow is one line of an account register: a transaction as it appears
// on a treasurer's report. RunningInCents is derived while reading, oldest
// first.
type RegisterRow struct {
	TransactionID  string    `json:"transactionID"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	CategoryName   string    `json:"categoryName"`
	ContactName    string    `json:"contactName"`
	AmountInCents  int64     `json:"amountInCents"`
	RunningInCents int64     `json:"runningInCents"`
}
