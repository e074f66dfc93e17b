package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

var (
	ErrNonPositiveRequest  = fmt.Errorf("%w: reimbursement amount must be positive", apperrors.ErrValidation)
	ErrIllegalTransition   = fmt.Errorf("%w: illegal reimbursement status transition", apperrors.ErrConflict)
	ErrUnknownItemTypeSeed = fmt.Errorf("%w: Other_Outgoing item type is not seeded", apperrors.ErrInternal)
)

// reimbursementService manages the reimbursement request lifecycle. Approval
// is the only transition with ledger side effects: it posts the offsetting
// transaction and flips the status in one atomic unit. Reopening a settled
// request never reverses a posted transaction.
type reimbursementService struct {
	reimbRepo   portsrepo.ReimbursementRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	refDataRepo portsrepo.RefDataRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	authorizer  portssvc.OrganizationAuthorizerSvc
	notifier    portssvc.Notifier
}

// NewReimbursementService creates a new ReimbursementService.
func NewReimbursementService(
	reimbRepo portsrepo.ReimbursementRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	refDataRepo portsrepo.RefDataRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	authorizer portssvc.OrganizationAuthorizerSvc,
	notifier portssvc.Notifier,
) portssvc.ReimbursementSvcFacade {
	return &reimbursementService{
		reimbRepo:   reimbRepo,
		accountRepo: accountRepo,
		refDataRepo: refDataRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		notifier:    notifier,
	}
}

var _ portssvc.ReimbursementSvcFacade = (*reimbursementService)(nil)

// CreateRequest opens a new PENDING reimbursement request.
func (s *reimbursementService) CreateRequest(ctx context.Context, organizationID string, input dto.CreateReimbursementInput, requesterUserID string) (*domain.ReimbursementRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, requesterUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if input.AmountInCents <= 0 {
		return nil, ErrNonPositiveRequest
	}

	account, err := s.accountRepo.FindAccountByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, input.AccountID)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, input.AccountID)
	}

	now := time.Now()
	request := domain.ReimbursementRequest{
		RequestID:      uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      input.AccountID,
		UserID:         requesterUserID,
		AmountInCents:  input.AmountInCents,
		Description:    input.Description,
		Status:         domain.ReimbursementPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if err := s.reimbRepo.SaveRequest(ctx, request, input.ReceiptIDs); err != nil {
		logger.Error("Failed to save reimbursement request", slog.String("error", err.Error()), slog.String("account_id", input.AccountID))
		return nil, fmt.Errorf("failed to save reimbursement request: %w", err)
	}

	logger.Info("Reimbursement request created",
		slog.String("request_id", request.RequestID),
		slog.String("requester_user_id", requesterUserID),
		slog.Int64("amount_in_cents", request.AmountInCents))
	return &request, nil
}

// GetRequestByID retrieves a request with its receipts.
func (s *reimbursementService) GetRequestByID(ctx context.Context, organizationID string, requestID string, userID string) (*domain.ReimbursementRequest, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	request, err := s.reimbRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return request, nil
}

// ListRequests retrieves requests for an organization, newest first.
func (s *reimbursementService) ListRequests(ctx context.Context, organizationID string, userID string, params dto.ListReimbursementsParams) ([]domain.ReimbursementRequest, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var status *domain.ReimbursementStatus
	if params.Status != nil {
		st := domain.ReimbursementStatus(*params.Status)
		status = &st
	}
	requests, err := s.reimbRepo.ListRequests(ctx, organizationID, status, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reimbursement requests: %w", err)
	}
	return requests, nil
}

// TransitionRequest moves a request to the submitted target status. Admin
// only. Approving posts the offsetting transaction atomically with the status
// change; rejecting, voiding and reopening touch only the request row. A
// reopened request keeps whatever transaction an earlier approval posted.
func (s *reimbursementService) TransitionRequest(ctx context.Context, organizationID string, requestID string, input dto.TransitionReimbursementInput, approverUserID string) (*domain.ReimbursementRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, approverUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	request, err := s.reimbRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if !request.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, request.Status, input.Status)
	}

	now := time.Now()
	if input.Status == domain.ReimbursementApproved {
		if err := s.approve(ctx, request, input, approverUserID, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.reimbRepo.UpdateStatus(ctx, requestID, input.Status, input.Note, approverUserID, now); err != nil {
			logger.Error("Failed to update reimbursement status", slog.String("error", err.Error()), slog.String("request_id", requestID))
			return nil, fmt.Errorf("failed to update reimbursement status: %w", err)
		}
	}

	logger.Info("Reimbursement request transitioned",
		slog.String("request_id", requestID),
		slog.String("from_status", string(request.Status)),
		slog.String("to_status", string(input.Status)),
		slog.String("approver_user_id", approverUserID))

	s.notifyRequester(ctx, request, input.Status)

	updated, err := s.reimbRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// approve builds the negative offsetting transaction and hands the pair to
// the repository, which locks the account, re-derives the balance and writes
// both rows or neither. The approver may override the requested amount,
// account and category.
func (s *reimbursementService) approve(ctx context.Context, request *domain.ReimbursementRequest, input dto.TransitionReimbursementInput, approverUserID string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if input.AmountInCents <= 0 {
		return ErrNonPositiveRequest
	}

	account, err := s.accountRepo.FindAccountByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, input.AccountID)
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account.OrganizationID != request.OrganizationID {
		return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, input.AccountID)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: %s", ErrInactiveAccount, input.AccountID)
	}

	typeID, methodID, err := s.lookupOutgoingRefData(ctx, request.OrganizationID)
	if err != nil {
		return err
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     approverUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: approverUserID,
	}
	requestID := request.RequestID
	offsetting := domain.Transaction{
		TransactionID:          uuid.NewString(),
		OrganizationID:         request.OrganizationID,
		AccountID:              input.AccountID,
		AmountInCents:          -input.AmountInCents,
		Date:                   now,
		Description:            fmt.Sprintf("Reimbursement: %s", request.Description),
		CategoryID:             &input.CategoryID,
		ReimbursementRequestID: &requestID,
		AuditFields:            audit,
	}
	offsetting.Items = []domain.TransactionItem{{
		ItemID:        uuid.NewString(),
		TransactionID: offsetting.TransactionID,
		TypeID:        typeID,
		MethodID:      methodID,
		AmountInCents: -input.AmountInCents,
		Description:   request.Description,
		AuditFields:   audit,
	}}

	approved := *request
	approved.Status = domain.ReimbursementApproved
	approved.ApproverNote = input.Note
	approved.AmountInCents = input.AmountInCents
	approved.AccountID = input.AccountID
	approved.LastUpdatedAt = now
	approved.LastUpdatedBy = approverUserID

	if err := s.reimbRepo.ApproveRequest(ctx, approved, offsetting); err != nil {
		var insufficientErr *apperrors.InsufficientFundsError
		if errors.As(err, &insufficientErr) {
			logger.Info("Reimbursement approval rejected for insufficient funds",
				slog.String("request_id", request.RequestID),
				slog.Int64("balance_in_cents", insufficientErr.BalanceInCents),
				slog.Int64("requested_in_cents", insufficientErr.RequestedInCents))
			return err
		}
		logger.Error("Failed to approve reimbursement request", slog.String("error", err.Error()), slog.String("request_id", request.RequestID))
		return fmt.Errorf("failed to approve reimbursement request: %w", err)
	}
	return nil
}

// lookupOutgoingRefData resolves the seeded Other_Outgoing type and Other
// method used by reimbursement postings. Org-scoped rows shadow globals.
func (s *reimbursementService) lookupOutgoingRefData(ctx context.Context, organizationID string) (string, string, error) {
	types, err := s.refDataRepo.ListItemTypes(ctx, organizationID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load item types: %w", err)
	}
	var typeID string
	for _, t := range types {
		if t.Name == domain.ItemTypeOtherOutgoing {
			typeID = t.TypeID
			if t.OrganizationID != nil {
				break
			}
		}
	}
	if typeID == "" {
		return "", "", ErrUnknownItemTypeSeed
	}

	methods, err := s.refDataRepo.ListItemMethods(ctx, organizationID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load item methods: %w", err)
	}
	var methodID string
	for _, m := range methods {
		if m.Name == domain.ItemMethodOther {
			methodID = m.MethodID
			if m.OrganizationID != nil {
				break
			}
		}
	}
	if methodID == "" {
		return "", "", fmt.Errorf("%w: item method %q is not seeded", apperrors.ErrInternal, domain.ItemMethodOther)
	}
	return typeID, methodID, nil
}

// notifyRequester delivers the status-change notification. Best effort:
// failures are logged and never surfaced to the caller.
func (s *reimbursementService) notifyRequester(ctx context.Context, request *domain.ReimbursementRequest, status domain.ReimbursementStatus) {
	logger := middleware.GetLoggerFromCtx(ctx)

	requester, err := s.userRepo.FindUserByID(ctx, request.UserID)
	if err != nil {
		logger.Warn("Failed to load requester for notification", slog.String("error", err.Error()), slog.String("request_id", request.RequestID))
		return
	}
	if err := s.notifier.SendStatusChangeNotification(ctx, requester.Email, request.RequestID, status); err != nil {
		logger.Warn("Failed to send status notification", slog.String("error", err.Error()), slog.String("request_id", request.RequestID))
	}
}
