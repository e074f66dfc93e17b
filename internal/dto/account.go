package dto

import (
	"time"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a fund account.
type CreateAccountRequest struct {
	Code         string  `json:"code" binding:"required,max=32"`
	Description  string  `json:"description" binding:"required"`
	TypeID       string  `json:"typeID" binding:"required"`
	LinkedUserID *string `json:"linkedUserID"`
}

// UpdateAccountRequest defines the payload for updating a fund account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Description  *string `json:"description"`
	TypeID       *string `json:"typeID"`
	LinkedUserID *string `json:"linkedUserID"`
}

// AccountResponse defines the data returned for an account. BalanceInCents is
// derived from the account's transactions at read time.
type AccountResponse struct {
	AccountID      string    `json:"accountID"`
	OrganizationID string    `json:"organizationID"`
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	TypeID         string    `json:"typeID"`
	LinkedUserID   *string   `json:"linkedUserID,omitempty"`
	IsActive       bool      `json:"isActive"`
	BalanceInCents int64     `json:"balanceInCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain account plus its derived balance.
func ToAccountResponse(account *domain.Account, balanceInCents int64) AccountResponse {
	return AccountResponse{
		AccountID:      account.AccountID,
		OrganizationID: account.OrganizationID,
		Code:           account.Code,
		Description:    account.Description,
		TypeID:         account.TypeID,
		LinkedUserID:   account.LinkedUserID,
		IsActive:       account.IsActive,
		BalanceInCents: balanceInCents,
		CreatedAt:      account.CreatedAt,
	}
}
