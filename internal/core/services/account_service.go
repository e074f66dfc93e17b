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

// accountService handles business logic for fund accounts. Balances are never
// stored on the account; they are derived from transactions on demand.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	authorizer  portssvc.OrganizationAuthorizerSvc
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account within the organization.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findOrgAccount(ctx, organizationID, accountID)
}

// ListAccounts retrieves a paginated list of the organization's accounts.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountBalance derives the account's balance from its transactions.
func (s *accountService) GetAccountBalance(ctx context.Context, organizationID string, accountID string, userID string) (int64, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return 0, err
	}
	if _, err := s.findOrgAccount(ctx, organizationID, accountID); err != nil {
		return 0, err
	}
	balance, err := s.accountRepo.SumAccountBalance(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to derive balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// CreateAccount creates a fund account. Admin only.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// Fund codes are unique per organization.
	if _, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code); err == nil {
		return nil, fmt.Errorf("%w: account code %q already in use", apperrors.ErrDuplicate, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.LinkedUserID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, *req.LinkedUserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: linked user %s not found", apperrors.ErrValidation, *req.LinkedUserID)
			}
			return nil, fmt.Errorf("failed to validate linked user: %w", err)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Description:    req.Description,
		TypeID:         req.TypeID,
		LinkedUserID:   req.LinkedUserID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount updates an account's details. Admin only; the fund code is
// immutable once assigned.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	account, err := s.findOrgAccount(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.TypeID != nil {
		account.TypeID = *req.TypeID
		updated = true
	}
	if req.LinkedUserID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, *req.LinkedUserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: linked user %s not found", apperrors.ErrValidation, *req.LinkedUserID)
			}
			return nil, fmt.Errorf("failed to validate linked user: %w", err)
		}
		account.LinkedUserID = req.LinkedUserID
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. Admin only. History stays
// queryable; new postings against the account are refused.
func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.findOrgAccount(ctx, organizationID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// findOrgAccount loads an account and hides accounts of other organizations.
func (s *accountService) findOrgAccount(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}
