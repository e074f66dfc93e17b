package dto

import (
	"fmt"
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/utils"
)

// NewTransactionItem is one form line as submitted by the client. Amount is a
// dollar string ("$12.34"); it is parsed to cents here at the edge and never
// reaches the core as a decimal string.
type NewTransactionItem struct {
	TypeID      string `json:"typeID" binding:"required"`
	MethodID    string `json:"methodID" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// NewItemInput is the parsed form of NewTransactionItem consumed by the
// transaction service. AmountInCents is always non-negative; the item type's
// direction decides the sign.
type NewItemInput struct {
	TypeID        string
	MethodID      string
	AmountInCents int64
	Description   string
}

// CreateTransactionRequest is the wire request for a simple expense or income
// posting. The same request shape serves both pages: the item types alone
// decide whether the total comes out negative or positive.
type CreateTransactionRequest struct {
	AccountID   string               `json:"accountID" binding:"required"`
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description"`
	CategoryID  *string              `json:"categoryID"`
	ContactID   *string              `json:"contactID"`
	ReceiptIDs  []string             `json:"receiptIDs"`
	Items       []NewTransactionItem `json:"items" binding:"required,min=1,dive"`
}

// CreateTransactionInput is CreateTransactionRequest with amounts in cents.
type CreateTransactionInput struct {
	AccountID   string
	Date        time.Time
	Description string
	CategoryID  *string
	ContactID   *string
	ReceiptIDs  []string
	Items       []NewItemInput
}

// ToInput parses the dollar-string amounts into cents.
func (r CreateTransactionRequest) ToInput() (CreateTransactionInput, error) {
	items := make([]NewItemInput, len(r.Items))
	for i, item := range r.Items {
		cents, err := utils.ParseDollarsToCents(item.Amount)
		if err != nil {
			return CreateTransactionInput{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		items[i] = NewItemInput{
			TypeID:        item.TypeID,
			MethodID:      item.MethodID,
			AmountInCents: cents,
			Description:   item.Description,
		}
	}
	return CreateTransactionInput{
		AccountID:   r.AccountID,
		Date:        r.Date,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		ContactID:   r.ContactID,
		ReceiptIDs:  r.ReceiptIDs,
		Items:       items,
	}, nil
}

// TransferRequest is the wire request for an inter-account transfer.
type TransferRequest struct {
	FromAccountID string    `json:"fromAccountID" binding:"required"`
	ToAccountID   string    `json:"toAccountID" binding:"required"`
	Amount        string    `json:"amount" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Description   string    `json:"description"`
}

// TransferInput is TransferRequest with the amount in cents.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	AmountInCents int64
	Date          time.Time
	Description   string
}

// ToInput parses the dollar-string amount into cents.
func (r TransferRequest) ToInput() (TransferInput, error) {
	cents, err := utils.ParseDollarsToCents(r.Amount)
	if err != nil {
		return TransferInput{}, err
	}
	return TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		AmountInCents: cents,
		Date:          r.Date,
		Description:   r.Description,
	}, nil
}

// TransferResult identifies the paired postings created by a transfer.
type TransferResult struct {
	OutTransactionID string `json:"outTransactionID"`
	InTransactionID  string `json:"inTransactionID"`
}

// TransactionItemResponse is one item line of a transaction response.
type TransactionItemResponse struct {
	ItemID        string `json:"itemID"`
	TypeID        string `json:"typeID"`
	MethodID      string `json:"methodID"`
	AmountInCents int64  `json:"amountInCents"`
	Description   string `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID          string                    `json:"transactionID"`
	AccountID              string                    `json:"accountID"`
	AmountInCents          int64                     `json:"amountInCents"`
	Date                   time.Time                 `json:"date"`
	Description            string                    `json:"description"`
	CategoryID             *string                   `json:"categoryID,omitempty"`
	ContactID              *string                   `json:"contactID,omitempty"`
	ReimbursementRequestID *string                   `json:"reimbursementRequestID,omitempty"`
	Items                  []TransactionItemResponse `json:"items,omitempty"`
	CreatedAt              time.Time                 `json:"createdAt"`
	CreatedBy              string                    `json:"createdBy"`
}

// ListTransactionsParams narrows a transaction listing.
type ListTransactionsParams struct {
	AccountID  string     `form:"accountID"`
	CategoryID string     `form:"categoryID"`
	ContactID  string     `form:"contactID"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	NextToken  *string    `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(txn.Items))
	for i, item := range txn.Items {
		items[i] = TransactionItemResponse{
			ItemID:        item.ItemID,
			TypeID:        item.TypeID,
			MethodID:      item.MethodID,
			AmountInCents: item.AmountInCents,
			Description:   item.Description,
		}
	}
	return TransactionResponse{
		TransactionID:          txn.TransactionID,
		AccountID:              txn.AccountID,
		AmountInCents:          txn.AmountInCents,
		Date:                   txn.Date,
		Description:            txn.Description,
		CategoryID:             txn.CategoryID,
		ContactID:              txn.ContactID,
		ReimbursementRequestID: txn.ReimbursementRequestID,
		Items:                  items,
		CreatedAt:              txn.CreatedAt,
		CreatedBy:              txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
