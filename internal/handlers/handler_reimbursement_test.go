package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// --- Mock ReimbursementService ---
type MockReimbursementService struct {
	mock.Mock
}

func (m *MockReimbursementService) CreateRequest(ctx context.Context, organizationID string, input dto.CreateReimbursementInput, requesterUserID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, organizationID, input, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementService) GetRequestByID(ctx context.Context, organizationID string, requestID string, userID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, organizationID, requestID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementService) ListRequests(ctx context.Context, organizationID string, userID string, params dto.ListReimbursementsParams) ([]domain.ReimbursementRequest, error) {
	args := m.Called(ctx, organizationID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementService) TransitionRequest(ctx context.Context, organizationID string, requestID string, input dto.TransitionReimbursementInput, approverUserID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, organizationID, requestID, input, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReimbursementSvcFacade = (*MockReimbursementService)(nil)

// --- Test Suite ---
type ReimbursementHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockReimbService *MockReimbursementService
	jwtSecret        string
}

func (suite *ReimbursementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ReimbursementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockReimbService = new(MockReimbursementService)

	orgGroup := suite.router.Group("/api/v1/organizations/:orgID")
	registerReimbursementRoutes(orgGroup, suite.mockReimbService)
}

func (suite *ReimbursementHandlerTestSuite) postTransition(orgID, requestID, userID string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("/api/v1/organizations/%s/reimbursements/%s/transition", orgID, requestID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func (suite *ReimbursementHandlerTestSuite) TestTransition_ApproveSuccess() {
	orgID := uuid.NewString()
	requestID := uuid.NewString()
	approverID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()

	expectedInput := dto.TransitionReimbursementInput{
		Status:        domain.ReimbursementApproved,
		AmountInCents: 4250,
		CategoryID:    categoryID,
		AccountID:     accountID,
		Note:          "Looks good",
	}
	approved := &domain.ReimbursementRequest{
		RequestID:      requestID,
		OrganizationID: orgID,
		AccountID:      accountID,
		AmountInCents:  4250,
		ApproverNote:   "Looks good",
		Status:         domain.ReimbursementApproved,
	}
	suite.mockReimbService.On("TransitionRequest", mock.Anything, orgID, requestID, expectedInput, approverID).
		Return(approved, nil).Once()

	w := suite.postTransition(orgID, requestID, approverID, dto.TransitionReimbursementRequest{
		Status:     "APPROVED",
		Amount:     strPtr("42.50"),
		CategoryID: strPtr(categoryID),
		AccountID:  strPtr(accountID),
		Note:       "Looks good",
	})

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ReimbursementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("APPROVED", body.Status)
	suite.Equal(int64(4250), body.AmountInCents)

	suite.mockReimbService.AssertExpectations(suite.T())
}

func (suite *ReimbursementHandlerTestSuite) TestTransition_ApproveMissingFields() {
	orgID := uuid.NewString()
	requestID := uuid.NewString()
	approverID := uuid.NewString()

	// Approving without amount, category and account must be rejected before
	// the service is reached.
	w := suite.postTransition(orgID, requestID, approverID, dto.TransitionReimbursementRequest{
		Status: "APPROVED",
		Note:   "Looks good",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReimbService.AssertNotCalled(suite.T(), "TransitionRequest")
}

func (suite *ReimbursementHandlerTestSuite) TestTransition_RejectWithoutAmount() {
	orgID := uuid.NewString()
	requestID := uuid.NewString()
	approverID := uuid.NewString()

	expectedInput := dto.TransitionReimbursementInput{
		Status: domain.ReimbursementRejected,
		Note:   "Receipts missing",
	}
	rejected := &domain.ReimbursementRequest{
		RequestID:      requestID,
		OrganizationID: orgID,
		AmountInCents:  4250,
		ApproverNote:   "Receipts missing",
		Status:         domain.ReimbursementRejected,
	}
	suite.mockReimbService.On("TransitionRequest", mock.Anything, orgID, requestID, expectedInput, approverID).
		Return(rejected, nil).Once()

	w := suite.postTransition(orgID, requestID, approverID, dto.TransitionReimbursementRequest{
		Status: "REJECTED",
		Note:   "Receipts missing",
	})

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ReimbursementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("REJECTED", body.Status)

	suite.mockReimbService.AssertExpectations(suite.T())
}

func (suite *ReimbursementHandlerTestSuite) TestTransition_InsufficientFunds() {
	orgID := uuid.NewString()
	requestID := uuid.NewString()
	approverID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()

	suite.mockReimbService.On("TransitionRequest", mock.Anything, orgID, requestID, mock.Anything, approverID).
		Return(nil, &apperrors.InsufficientFundsError{
			AccountID:        accountID,
			BalanceInCents:   1000,
			RequestedInCents: 4250,
		}).Once()

	w := suite.postTransition(orgID, requestID, approverID, dto.TransitionReimbursementRequest{
		Status:     "APPROVED",
		Amount:     strPtr("42.50"),
		CategoryID: strPtr(categoryID),
		AccountID:  strPtr(accountID),
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body InsufficientFundsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(accountID, body.AccountID)
	suite.Equal(int64(1000), body.BalanceInCents)
	suite.Equal(int64(4250), body.RequestedInCents)

	suite.mockReimbService.AssertExpectations(suite.T())
}

func (suite *ReimbursementHandlerTestSuite) TestTransition_IllegalTransition() {
	orgID := uuid.NewString()
	requestID := uuid.NewString()
	approverID := uuid.NewString()

	suite.mockReimbService.On("TransitionRequest", mock.Anything, orgID, requestID, mock.Anything, approverID).
		Return(nil, fmt.Errorf("cannot move request from VOID to REJECTED: %w", apperrors.ErrConflict)).Once()

	w := suite.postTransition(orgID, requestID, approverID, dto.TransitionReimbursementRequest{
		Status: "REJECTED",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockReimbService.AssertExpectations(suite.T())
}

func (suite *ReimbursementHandlerTestSuite) TestCreateRequest_Success() {
	orgID := uuid.NewString()
	requesterID := uuid.NewString()
	accountID := uuid.NewString()
	receiptID := uuid.NewString()

	expectedInput := dto.CreateReimbursementInput{
		AccountID:     accountID,
		AmountInCents: 1999,
		Description:   "Pizza for volunteers",
		ReceiptIDs:    []string{receiptID},
	}
	created := &domain.ReimbursementRequest{
		RequestID:      uuid.NewString(),
		OrganizationID: orgID,
		AccountID:      accountID,
		UserID:         requesterID,
		AmountInCents:  1999,
		Description:    "Pizza for volunteers",
		Status:         domain.ReimbursementPending,
	}
	suite.mockReimbService.On("CreateRequest", mock.Anything, orgID, expectedInput, requesterID).
		Return(created, nil).Once()

	payload, _ := json.Marshal(dto.CreateReimbursementRequest{
		AccountID:   accountID,
		Amount:      "19.99",
		Description: "Pizza for volunteers",
		ReceiptIDs:  []string{receiptID},
	})
	url := fmt.Sprintf("/api/v1/organizations/%s/reimbursements", orgID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requesterID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.ReimbursementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("PENDING", body.Status)
	suite.Equal(int64(1999), body.AmountInCents)

	suite.mockReimbService.AssertExpectations(suite.T())
}

func TestReimbursementHandler(t *testing.T) {
	suite.Run(t, new(ReimbursementHandlerTestSuite))
}
