package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
)

// ErrorResponse is the generic error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InsufficientFundsResponse is the body returned when a posting is rejected
// for lack of funds. The balances let the client render a useful warning.
type InsufficientFundsResponse struct {
	Error            string `json:"error"`
	AccountID        string `json:"accountID"`
	BalanceInCents   int64  `json:"balanceInCents"`
	RequestedInCents int64  `json:"requestedInCents"`
}

// respondServiceError translates service errors into HTTP responses. Handlers
// call it after binding succeeded, so anything unmapped is a server fault.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var insufficientErr *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficientErr):
		logger.Info("Posting rejected for insufficient funds",
			slog.String("account_id", insufficientErr.AccountID),
			slog.Int64("balance_in_cents", insufficientErr.BalanceInCents),
			slog.Int64("requested_in_cents", insufficientErr.RequestedInCents),
		)
		c.JSON(http.StatusUnprocessableEntity, InsufficientFundsResponse{
			Error:            "insufficient funds",
			AccountID:        insufficientErr.AccountID,
			BalanceInCents:   insufficientErr.BalanceInCents,
			RequestedInCents: insufficientErr.RequestedInCents,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
	}
}
