package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

// ReimbursementSvcFacade manages reimbursement requests and their lifecycle.
type ReimbursementSvcFacade interface {
	CreateRequest(ctx context.Context, organizationID string, input dto.CreateReimbursementInput, requesterUserID string) (*domain.ReimbursementRequest, error)
	GetRequestByID(ctx context.Context, organizationID string, requestID string, userID string) (*domain.ReimbursementRequest, error)
	ListRequests(ctx context.Context, organizationID string, userID string, params dto.ListReimbursementsParams) ([]domain.ReimbursementRequest, error)

	// TransitionRequest moves a request to the submitted target status.
	// Approving checks the account balance and posts the offsetting
	// transaction in the same atomic unit; insufficient funds surfaces as
	// *apperrors.InsufficientFundsError with the request left PENDING.
	TransitionRequest(ctx context.Context, organizationID string, requestID string, input dto.TransitionReimbursementInput, approverUserID string) (*domain.ReimbursementRequest, error)
}
