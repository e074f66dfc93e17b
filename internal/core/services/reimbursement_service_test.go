package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/core/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
)

type ReimbursementServiceTestSuite struct {
	suite.Suite
	mockReimbRepo   *MockReimbursementRepository
	mockAccountRepo *MockAccountRepository
	mockRefDataRepo *MockRefDataRepository
	mockUserRepo    *MockUserRepository
	mockAuthorizer  *MockAuthorizer
	mockNotifier    *MockNotifier
	service         portssvc.ReimbursementSvcFacade

	organizationID string
	approverID     string
	requester      domain.User
	account        domain.Account
	request        domain.ReimbursementRequest

	outgoingType domain.TransactionItemType
	otherMethod  domain.TransactionItemMethod
	categoryID   string
}

func (suite *ReimbursementServiceTestSuite) SetupTest() {
	suite.mockReimbRepo = new(MockReimbursementRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockRefDataRepo = new(MockRefDataRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewReimbursementService(
		suite.mockReimbRepo,
		suite.mockAccountRepo,
		suite.mockRefDataRepo,
		suite.mockUserRepo,
		suite.mockAuthorizer,
		suite.mockNotifier,
	)

	suite.organizationID = uuid.NewString()
	suite.approverID = uuid.NewString()
	suite.requester = domain.User{UserID: uuid.NewString(), Name: "Pat", Email: "pat@example.org"}
	suite.account = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "GEN",
		IsActive:       true,
	}
	suite.request = domain.ReimbursementRequest{
		RequestID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountID:      suite.account.AccountID,
		UserID:         suite.requester.UserID,
		AmountInCents:  4500,
		Description:    "Craft supplies",
		Status:         domain.ReimbursementPending,
	}

	suite.outgoingType = domain.TransactionItemType{TypeID: uuid.NewString(), Name: domain.ItemTypeOtherOutgoing, Direction: domain.DirectionOut}
	suite.otherMethod = domain.TransactionItemMethod{MethodID: uuid.NewString(), Name: domain.ItemMethodOther}
	suite.categoryID = uuid.NewString()
}

func (suite *ReimbursementServiceTestSuite) expectSeededRefData() {
	suite.mockRefDataRepo.On("ListItemTypes", mock.Anything, suite.organizationID).
		Return([]domain.TransactionItemType{suite.outgoingType}, nil).Once()
	suite.mockRefDataRepo.On("ListItemMethods", mock.Anything, suite.organizationID).
		Return([]domain.TransactionItemMethod{suite.otherMethod}, nil).Once()
}

func (suite *ReimbursementServiceTestSuite) approveInput() dto.TransitionReimbursementInput {
	return dto.TransitionReimbursementInput{
		Status:        domain.ReimbursementApproved,
		AmountInCents: suite.request.AmountInCents,
		CategoryID:    suite.categoryID,
		AccountID:     suite.account.AccountID,
		Note:          "Looks good",
	}
}

// --- CreateRequest ---

func (suite *ReimbursementServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	input := dto.CreateReimbursementInput{
		AccountID:     suite.account.AccountID,
		AmountInCents: 4500,
		Description:   "Craft supplies",
	}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.requester.UserID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockReimbRepo.On("SaveRequest", ctx, mock.MatchedBy(func(req domain.ReimbursementRequest) bool {
		return req.Status == domain.ReimbursementPending &&
			req.AmountInCents == 4500 &&
			req.UserID == suite.requester.UserID
	}), mock.Anything).Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.organizationID, input, suite.requester.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.ReimbursementPending, created.Status)
	suite.mockReimbRepo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestCreateRequest_NonPositiveAmount() {
	ctx := context.Background()
	input := dto.CreateReimbursementInput{AccountID: suite.account.AccountID, AmountInCents: 0}
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.requester.UserID, suite.organizationID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateRequest(ctx, suite.organizationID, input, suite.requester.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNonPositiveRequest)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything, mock.Anything)
}

// --- TransitionRequest: approve ---

func (suite *ReimbursementServiceTestSuite) TestTransition_ApproveSuccess() {
	ctx := context.Background()
	pending := suite.request
	approved := suite.request
	approved.Status = domain.ReimbursementApproved

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&pending, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.expectSeededRefData()
	suite.mockReimbRepo.On("ApproveRequest", ctx,
		mock.MatchedBy(func(req domain.ReimbursementRequest) bool {
			return req.RequestID == pending.RequestID &&
				req.Status == domain.ReimbursementApproved &&
				req.ApproverNote == "Looks good"
		}),
		mock.MatchedBy(func(offsetting domain.Transaction) bool {
			return offsetting.AmountInCents == -4500 &&
				offsetting.AccountID == suite.account.AccountID &&
				offsetting.ReimbursementRequestID != nil &&
				*offsetting.ReimbursementRequestID == pending.RequestID &&
				len(offsetting.Items) == 1 &&
				offsetting.Items[0].AmountInCents == -4500 &&
				offsetting.Items[0].TypeID == suite.outgoingType.TypeID
		}),
	).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.requester.UserID).Return(&suite.requester, nil).Once()
	suite.mockNotifier.On("SendStatusChangeNotification", ctx, suite.requester.Email, pending.RequestID, domain.ReimbursementApproved).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&approved, nil).Once()

	result, err := suite.service.TransitionRequest(ctx, suite.organizationID, pending.RequestID, suite.approveInput(), suite.approverID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.ReimbursementApproved, result.Status)
	suite.mockReimbRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
	// Approval never goes through the status-only path.
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestTransition_ApproveInsufficientFunds() {
	ctx := context.Background()
	pending := suite.request
	fundsErr := &apperrors.InsufficientFundsError{
		AccountID:        suite.account.AccountID,
		BalanceInCents:   1000,
		RequestedInCents: 4500,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&pending, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.expectSeededRefData()
	suite.mockReimbRepo.On("ApproveRequest", ctx, mock.Anything, mock.Anything).Return(fundsErr).Once()

	_, err := suite.service.TransitionRequest(ctx, suite.organizationID, pending.RequestID, suite.approveInput(), suite.approverID)

	suite.Require().Error(err)
	var insufficientErr *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &insufficientErr)
	suite.Equal(int64(1000), insufficientErr.BalanceInCents)
	// The request stays PENDING: no status-only update, no notification.
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "SendStatusChangeNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- TransitionRequest: reject / void / reopen ---

func (suite *ReimbursementServiceTestSuite) TestTransition_Reject() {
	ctx := context.Background()
	pending := suite.request
	rejected := suite.request
	rejected.Status = domain.ReimbursementRejected
	input := dto.TransitionReimbursementInput{Status: domain.ReimbursementRejected, Note: "No receipt"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&pending, nil).Once()
	suite.mockReimbRepo.On("UpdateStatus", ctx, pending.RequestID, domain.ReimbursementRejected, "No receipt", suite.approverID, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.requester.UserID).Return(&suite.requester, nil).Once()
	suite.mockNotifier.On("SendStatusChangeNotification", ctx, suite.requester.Email, pending.RequestID, domain.ReimbursementRejected).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&rejected, nil).Once()

	result, err := suite.service.TransitionRequest(ctx, suite.organizationID, pending.RequestID, input, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementRejected, result.Status)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "ApproveRequest", mock.Anything, mock.Anything, mock.Anything)
}

// Reopening an approved request flips only the status: the transaction the
// approval posted stays on the ledger untouched.
func (suite *ReimbursementServiceTestSuite) TestTransition_ReopenDoesNotReverse() {
	ctx := context.Background()
	approved := suite.request
	approved.Status = domain.ReimbursementApproved
	reopened := suite.request
	reopened.Status = domain.ReimbursementPending
	input := dto.TransitionReimbursementInput{Status: domain.ReimbursementPending, Note: "Amount disputed"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, approved.RequestID).Return(&approved, nil).Once()
	suite.mockReimbRepo.On("UpdateStatus", ctx, approved.RequestID, domain.ReimbursementPending, "Amount disputed", suite.approverID, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.requester.UserID).Return(&suite.requester, nil).Once()
	suite.mockNotifier.On("SendStatusChangeNotification", ctx, suite.requester.Email, approved.RequestID, domain.ReimbursementPending).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, approved.RequestID).Return(&reopened, nil).Once()

	result, err := suite.service.TransitionRequest(ctx, suite.organizationID, approved.RequestID, input, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementPending, result.Status)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "ApproveRequest", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReimbRepo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestTransition_IllegalTransition() {
	ctx := context.Background()
	rejected := suite.request
	rejected.Status = domain.ReimbursementRejected
	input := dto.TransitionReimbursementInput{Status: domain.ReimbursementVoid}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, rejected.RequestID).Return(&rejected, nil).Once()

	_, err := suite.service.TransitionRequest(ctx, suite.organizationID, rejected.RequestID, input, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIllegalTransition)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReimbRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestTransition_NotifierFailureDoesNotFail() {
	ctx := context.Background()
	pending := suite.request
	voided := suite.request
	voided.Status = domain.ReimbursementVoid
	input := dto.TransitionReimbursementInput{Status: domain.ReimbursementVoid}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&pending, nil).Once()
	suite.mockReimbRepo.On("UpdateStatus", ctx, pending.RequestID, domain.ReimbursementVoid, "", suite.approverID, mock.Anything).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.requester.UserID).Return(&suite.requester, nil).Once()
	suite.mockNotifier.On("SendStatusChangeNotification", ctx, suite.requester.Email, pending.RequestID, domain.ReimbursementVoid).Return(context.DeadlineExceeded).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, pending.RequestID).Return(&voided, nil).Once()

	result, err := suite.service.TransitionRequest(ctx, suite.organizationID, pending.RequestID, input, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementVoid, result.Status)
}

func (suite *ReimbursementServiceTestSuite) TestTransition_WrongOrganization() {
	ctx := context.Background()
	foreign := suite.request
	foreign.OrganizationID = uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.approverID, suite.organizationID, domain.RoleAdmin).Return(nil).Once()
	suite.mockReimbRepo.On("FindRequestByID", ctx, foreign.RequestID).Return(&foreign, nil).Once()

	_, err := suite.service.TransitionRequest(ctx, suite.organizationID, foreign.RequestID, dto.TransitionReimbursementInput{Status: domain.ReimbursementVoid}, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReimbursementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReimbursementServiceTestSuite))
}
