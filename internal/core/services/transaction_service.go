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
	"github.com/grovefund/fund_portal_app/internal/utils/accounting"
	"github.com/grovefund/fund_portal_app/internal/utils/pagination"
)

// Business-rule failures of the posting entry points. All wrap ErrValidation
// so the handler layer maps them to a 400 without special cases.
var (
	ErrNoItems             = fmt.Errorf("%w: transaction requires at least one item", apperrors.ErrValidation)
	ErrUnknownItemType     = fmt.Errorf("%w: unknown transaction item type", apperrors.ErrValidation)
	ErrUnknownItemMethod   = fmt.Errorf("%w: unknown transaction item method", apperrors.ErrValidation)
	ErrSameAccountTransfer = fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
	ErrNonPositiveTransfer = fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	ErrInactiveAccount     = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
)

// transactionService implements ledger posting. All amounts entering this
// service are already integer cents; the item type's direction is the only
// thing that ever decides an amount's sign.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	refDataRepo portsrepo.RefDataRepositoryFacade
	authorizer  portssvc.OrganizationAuthorizerSvc
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	refDataRepo portsrepo.RefDataRepositoryFacade,
	authorizer portssvc.OrganizationAuthorizerSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		refDataRepo: refDataRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GenerateItems signs each raw line amount by its type's direction and returns
// the aggregate total alongside the built items. The raw amounts are
// non-negative by contract; an empty input is a valid zero-total result. The
// returned items carry fresh IDs but no transaction id yet.
func (s *transactionService) GenerateItems(ctx context.Context, organizationID string, inputs []dto.NewItemInput) (int64, []domain.TransactionItem, error) {
	if len(inputs) == 0 {
		return 0, []domain.TransactionItem{}, nil
	}

	types, err := s.refDataRepo.ListItemTypes(ctx, organizationID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load item types: %w", err)
	}
	typesByID := make(map[string]domain.TransactionItemType, len(types))
	for _, t := range types {
		typesByID[t.TypeID] = t
	}

	items := make([]domain.TransactionItem, 0, len(inputs))
	var total int64
	for i, input := range inputs {
		itemType, ok := typesByID[input.TypeID]
		if !ok {
			return 0, nil, fmt.Errorf("item %d: %w: %s", i+1, ErrUnknownItemType, input.TypeID)
		}
		signed, err := accounting.SignedAmount(itemType.Direction, input.AmountInCents)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: item %d: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		items = append(items, domain.TransactionItem{
			ItemID:        uuid.NewString(),
			TypeID:        input.TypeID,
			MethodID:      input.MethodID,
			AmountInCents: signed,
			Description:   input.Description,
		})
		total += signed
	}
	return total, items, nil
}

// CreateTransaction posts a simple expense or income entry: items are signed
// by direction, the header amount is their sum, and the whole set persists in
// one unit.
func (s *transactionService) CreateTransaction(ctx context.Context, organizationID string, input dto.CreateTransactionInput, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	if err := s.validatePostingAccount(ctx, organizationID, input.AccountID); err != nil {
		return nil, err
	}

	total, items, err := s.GenerateItems(ctx, organizationID, input.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      input.AccountID,
		AmountInCents:  total,
		Date:           input.Date,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		ContactID:      input.ContactID,
		Items:          items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i := range txn.Items {
		txn.Items[i].TransactionID = txn.TransactionID
		txn.Items[i].AuditFields = txn.AuditFields
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, input.ReceiptIDs); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", input.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int64("amount_in_cents", txn.AmountInCents))
	return &txn, nil
}

// Transfer posts the paired debit/credit of an inter-account transfer. The
// source side is a negative Transfer_Out posting, the destination a positive
// Transfer_In posting; the repository writes both or neither and rejects the
// pair when the source balance cannot cover the amount.
func (s *transactionService) Transfer(ctx context.Context, organizationID string, input dto.TransferInput, userID string) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, ErrSameAccountTransfer
	}
	if input.AmountInCents <= 0 {
		return nil, ErrNonPositiveTransfer
	}

	if err := s.validatePostingAccount(ctx, organizationID, input.FromAccountID); err != nil {
		return nil, err
	}
	if err := s.validatePostingAccount(ctx, organizationID, input.ToAccountID); err != nil {
		return nil, err
	}

	refs, err := s.lookupTransferRefData(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	description := input.Description
	if description == "" {
		description = "Internal transfer"
	}

	out := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      input.FromAccountID,
		AmountInCents:  -input.AmountInCents,
		Date:           input.Date,
		Description:    description,
		CategoryID:     &refs.lossCategoryID,
		AuditFields:    audit,
	}
	out.Items = []domain.TransactionItem{{
		ItemID:        uuid.NewString(),
		TransactionID: out.TransactionID,
		TypeID:        refs.transferOutTypeID,
		MethodID:      refs.otherMethodID,
		AmountInCents: -input.AmountInCents,
		Description:   description,
		AuditFields:   audit,
	}}

	in := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      input.ToAccountID,
		AmountInCents:  input.AmountInCents,
		Date:           input.Date,
		Description:    description,
		CategoryID:     &refs.gainCategoryID,
		AuditFields:    audit,
	}
	in.Items = []domain.TransactionItem{{
		ItemID:        uuid.NewString(),
		TransactionID: in.TransactionID,
		TypeID:        refs.transferInTypeID,
		MethodID:      refs.otherMethodID,
		AmountInCents: input.AmountInCents,
		Description:   description,
		AuditFields:   audit,
	}}

	if err := s.txnRepo.SaveTransfer(ctx, out, in); err != nil {
		var insufficientErr *apperrors.InsufficientFundsError
		if errors.As(err, &insufficientErr) {
			logger.Info("Transfer rejected for insufficient funds",
				slog.String("from_account_id", input.FromAccountID),
				slog.Int64("balance_in_cents", insufficientErr.BalanceInCents),
				slog.Int64("requested_in_cents", insufficientErr.RequestedInCents))
			return nil, err
		}
		logger.Error("Failed to save transfer", slog.String("error", err.Error()),
			slog.String("from_account_id", input.FromAccountID),
			slog.String("to_account_id", input.ToAccountID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer posted",
		slog.String("out_transaction_id", out.TransactionID),
		slog.String("in_transaction_id", in.TransactionID),
		slog.Int64("amount_in_cents", input.AmountInCents))
	return &dto.TransferResult{
		OutTransactionID: out.TransactionID,
		InTransactionID:  in.TransactionID,
	}, nil
}

// GetTransactionByID retrieves a transaction with its items. Transactions from
// other organizations are indistinguishable from missing ones.
func (s *transactionService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, organizationID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if params.NextToken != nil {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	filter := portsrepo.TransactionFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		ContactID:  params.ContactID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Limit:      limit,
		NextToken:  params.NextToken,
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, organizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// validatePostingAccount ensures the account exists, belongs to the
// organization and is active before anything is posted against it.
func (s *transactionService) validatePostingAccount(ctx context.Context, organizationID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, accountID)
		}
		return fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account.OrganizationID != organizationID {
		return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, accountID)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: %s", ErrInactiveAccount, accountID)
	}
	return nil
}

// transferRefData holds the well-known reference data rows a transfer posts
// against.
type transferRefData struct {
	transferOutTypeID string
	transferInTypeID  string
	otherMethodID     string
	lossCategoryID    string
	gainCategoryID    string
}

// lookupTransferRefData resolves the seeded transfer types, the Other method
// and the transfer gain/loss categories by name. Org-scoped rows shadow
// globals of the same name.
func (s *transactionService) lookupTransferRefData(ctx context.Context, organizationID string) (*transferRefData, error) {
	types, err := s.refDataRepo.ListItemTypes(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item types: %w", err)
	}
	methods, err := s.refDataRepo.ListItemMethods(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item methods: %w", err)
	}
	categories, err := s.refDataRepo.ListCategories(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	refs := &transferRefData{}

	findType := func(name string) (string, bool) {
		id, ok := "", false
		for _, t := range types {
			if t.Name != name {
				continue
			}
			if t.OrganizationID != nil {
				return t.TypeID, true
			}
			id, ok = t.TypeID, true
		}
		return id, ok
	}
	var ok bool
	if refs.transferOutTypeID, ok = findType(domain.ItemTypeTransferOut); !ok {
		return nil, fmt.Errorf("%w: item type %q is not seeded", apperrors.ErrInternal, domain.ItemTypeTransferOut)
	}
	if refs.transferInTypeID, ok = findType(domain.ItemTypeTransferIn); !ok {
		return nil, fmt.Errorf("%w: item type %q is not seeded", apperrors.ErrInternal, domain.ItemTypeTransferIn)
	}

	for _, m := range methods {
		if m.Name == domain.ItemMethodOther {
			refs.otherMethodID = m.MethodID
			if m.OrganizationID != nil {
				break
			}
		}
	}
	if refs.otherMethodID == "" {
		return nil, fmt.Errorf("%w: item method %q is not seeded", apperrors.ErrInternal, domain.ItemMethodOther)
	}

	for _, c := range categories {
		switch c.Name {
		case domain.CategoryTransferLoss:
			if refs.lossCategoryID == "" || c.OrganizationID != nil {
				refs.lossCategoryID = c.CategoryID
			}
		case domain.CategoryTransferGain:
			if refs.gainCategoryID == "" || c.OrganizationID != nil {
				refs.gainCategoryID = c.CategoryID
			}
		}
	}
	if refs.lossCategoryID == "" || refs.gainCategoryID == "" {
		return nil, fmt.Errorf("%w: transfer categories are not seeded", apperrors.ErrInternal)
	}
	return refs, nil
}
