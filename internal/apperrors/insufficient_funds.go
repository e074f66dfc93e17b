package apperrors

import "fmt"

// InsufficientFundsError is a business-rule rejection, not an infrastructure
// failure: the account's derived balance cannot cover the requested amount.
// Nothing is written when it is returned. Handlers render it as a user-facing
// warning rather than a server error.
type InsufficientFundsError struct {
	AccountID        string
	BalanceInCents   int64
	RequestedInCents int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: account %s holds %d cents, %d cents requested",
		e.AccountID, e.BalanceInCents, e.RequestedInCents)
}
