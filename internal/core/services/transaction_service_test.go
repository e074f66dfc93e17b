package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/core/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockRefDataRepo *MockRefDataRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.TransactionSvcFacade

	organizationID string
	userID         string
	account        domain.Account
	otherAccount   domain.Account

	donationType domain.TransactionItemType // IN
	expenseType  domain.TransactionItemType // OUT
	cashMethod   domain.TransactionItemMethod
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockRefDataRepo = new(MockRefDataRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockRefDataRepo, suite.mockAuthorizer)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "GEN",
		IsActive:       true,
	}
	suite.otherAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "YOUTH",
		IsActive:       true,
	}

	suite.donationType = domain.TransactionItemType{TypeID: uuid.NewString(), Name: "Donation", Direction: domain.DirectionIn}
	suite.expenseType = domain.TransactionItemType{TypeID: uuid.NewString(), Name: "Supplies", Direction: domain.DirectionOut}
	suite.cashMethod = domain.TransactionItemMethod{MethodID: uuid.NewString(), Name: "Cash"}
}

func (suite *TransactionServiceTestSuite) itemTypes() []domain.TransactionItemType {
	return []domain.TransactionItemType{suite.donationType, suite.expenseType}
}

// --- GenerateItems ---

func (suite *TransactionServiceTestSuite) TestGenerateItems_SignsByDirection() {
	ctx := context.Background()
	inputs := []dto.NewItemInput{
		{TypeID: suite.donationType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 5000},
		{TypeID: suite.expenseType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 1250},
		{TypeID: suite.donationType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 100},
	}
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(suite.itemTypes(), nil).Once()

	total, items, err := suite.service.GenerateItems(ctx, suite.organizationID, inputs)

	suite.Require().NoError(err)
	suite.Require().Len(items, 3)
	suite.Equal(int64(5000), items[0].AmountInCents)
	suite.Equal(int64(-1250), items[1].AmountInCents)
	suite.Equal(int64(100), items[2].AmountInCents)
	suite.Equal(int64(3850), total)
	suite.NotEmpty(items[0].ItemID)
	suite.mockRefDataRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGenerateItems_EmptyInput() {
	ctx := context.Background()

	total, items, err := suite.service.GenerateItems(ctx, suite.organizationID, nil)

	suite.Require().NoError(err)
	suite.Empty(items)
	suite.Equal(int64(0), total)
	suite.mockRefDataRepo.AssertNotCalled(suite.T(), "ListItemTypes", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGenerateItems_UnknownType() {
	ctx := context.Background()
	inputs := []dto.NewItemInput{
		{TypeID: uuid.NewString(), MethodID: suite.cashMethod.MethodID, AmountInCents: 100},
	}
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(suite.itemTypes(), nil).Once()

	_, _, err := suite.service.GenerateItems(ctx, suite.organizationID, inputs)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownItemType)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestGenerateItems_AllOutgoing() {
	ctx := context.Background()
	inputs := []dto.NewItemInput{
		{TypeID: suite.expenseType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 2000},
		{TypeID: suite.expenseType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 350},
	}
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(suite.itemTypes(), nil).Once()

	total, items, err := suite.service.GenerateItems(ctx, suite.organizationID, inputs)

	suite.Require().NoError(err)
	suite.Equal(int64(-2350), total)
	suite.Len(items, 2)
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	receiptIDs := []string{uuid.NewString()}
	input := dto.CreateTransactionInput{
		AccountID:   suite.account.AccountID,
		Date:        time.Now(),
		Description: "Bake sale proceeds",
		ReceiptIDs:  receiptIDs,
		Items: []dto.NewItemInput{
			{TypeID: suite.donationType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 7500},
			{TypeID: suite.expenseType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 500},
		},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(suite.itemTypes(), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AmountInCents == 7000 &&
			txn.OrganizationID == suite.organizationID &&
			len(txn.Items) == 2 &&
			txn.Items[0].TransactionID == txn.TransactionID &&
			txn.Items[1].AmountInCents == -500
	}), receiptIDs).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.organizationID, input, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(7000), txn.AmountInCents)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.Nil(txn.ReimbursementRequestID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoItems() {
	ctx := context.Background()
	input := dto.CreateTransactionInput{AccountID: suite.account.AccountID, Date: time.Now()}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoItems)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.account
	inactive.IsActive = false
	input := dto.CreateTransactionInput{
		AccountID: inactive.AccountID,
		Date:      time.Now(),
		Items: []dto.NewItemInput{
			{TypeID: suite.donationType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 100},
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInactiveAccount)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AuthorizationFail() {
	ctx := context.Background()
	input := dto.CreateTransactionInput{
		AccountID: suite.account.AccountID,
		Items: []dto.NewItemInput{
			{TypeID: suite.donationType.TypeID, MethodID: suite.cashMethod.MethodID, AmountInCents: 100},
		},
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

// --- Transfer ---

func (suite *TransactionServiceTestSuite) transferRefData() ([]domain.TransactionItemType, []domain.TransactionItemMethod, []domain.TransactionCategory) {
	types := append(suite.itemTypes(),
		domain.TransactionItemType{TypeID: uuid.NewString(), Name: domain.ItemTypeTransferOut, Direction: domain.DirectionOut},
		domain.TransactionItemType{TypeID: uuid.NewString(), Name: domain.ItemTypeTransferIn, Direction: domain.DirectionIn},
	)
	methods := []domain.TransactionItemMethod{
		suite.cashMethod,
		{MethodID: uuid.NewString(), Name: domain.ItemMethodOther},
	}
	categories := []domain.TransactionCategory{
		{CategoryID: uuid.NewString(), Name: domain.CategoryTransferLoss},
		{CategoryID: uuid.NewString(), Name: domain.CategoryTransferGain},
	}
	return types, methods, categories
}

func (suite *TransactionServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	input := dto.TransferInput{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		AmountInCents: 2500,
		Date:          time.Now(),
	}
	types, methods, categories := suite.transferRefData()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.otherAccount.AccountID).Return(&suite.otherAccount, nil).Once()
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(types, nil).Once()
	suite.mockRefDataRepo.On("ListItemMethods", ctx, suite.organizationID).Return(methods, nil).Once()
	suite.mockRefDataRepo.On("ListCategories", ctx, suite.organizationID).Return(categories, nil).Once()
	suite.mockTxnRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(out domain.Transaction) bool {
			return out.AccountID == suite.account.AccountID &&
				out.AmountInCents == -2500 &&
				len(out.Items) == 1 && out.Items[0].AmountInCents == -2500
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			return in.AccountID == suite.otherAccount.AccountID &&
				in.AmountInCents == 2500 &&
				len(in.Items) == 1 && in.Items[0].AmountInCents == 2500
		}),
	).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.organizationID, input, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.NotEmpty(result.OutTransactionID)
	suite.NotEmpty(result.InTransactionID)
	suite.NotEqual(result.OutTransactionID, result.InTransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()
	input := dto.TransferInput{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.account.AccountID,
		AmountInCents: 100,
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.Transfer(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSameAccountTransfer)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()
	input := dto.TransferInput{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		AmountInCents: 0,
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.Transfer(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNonPositiveTransfer)
}

func (suite *TransactionServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	input := dto.TransferInput{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		AmountInCents: 100000,
		Date:          time.Now(),
	}
	types, methods, categories := suite.transferRefData()
	fundsErr := &apperrors.InsufficientFundsError{
		AccountID:        suite.account.AccountID,
		BalanceInCents:   4200,
		RequestedInCents: 100000,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.otherAccount.AccountID).Return(&suite.otherAccount, nil).Once()
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(types, nil).Once()
	suite.mockRefDataRepo.On("ListItemMethods", ctx, suite.organizationID).Return(methods, nil).Once()
	suite.mockRefDataRepo.On("ListCategories", ctx, suite.organizationID).Return(categories, nil).Once()
	suite.mockTxnRepo.On("SaveTransfer", ctx, mock.Anything, mock.Anything).Return(fundsErr).Once()

	_, err := suite.service.Transfer(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	var insufficientErr *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &insufficientErr)
	suite.Equal(int64(4200), insufficientErr.BalanceInCents)
}

func (suite *TransactionServiceTestSuite) TestTransfer_MissingSeedData() {
	ctx := context.Background()
	input := dto.TransferInput{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   suite.otherAccount.AccountID,
		AmountInCents: 100,
		Date:          time.Now(),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.otherAccount.AccountID).Return(&suite.otherAccount, nil).Once()
	// No transfer types seeded
	suite.mockRefDataRepo.On("ListItemTypes", ctx, suite.organizationID).Return(suite.itemTypes(), nil).Once()
	suite.mockRefDataRepo.On("ListItemMethods", ctx, suite.organizationID).Return([]domain.TransactionItemMethod{suite.cashMethod}, nil).Once()
	suite.mockRefDataRepo.On("ListCategories", ctx, suite.organizationID).Return([]domain.TransactionCategory{}, nil).Once()

	_, err := suite.service.Transfer(ctx, suite.organizationID, input, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_WrongOrganization() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: uuid.NewString(),
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.organizationID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
