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

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountBalance(ctx context.Context, organizationID string, accountID string, userID string) (int64, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	orgGroup := suite.router.Group("/api/v1/organizations/:orgID")
	registerAccountRoutes(orgGroup, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: orgID,
		Code:           "GEN",
		Description:    "General fund",
		TypeID:         uuid.NewString(),
		IsActive:       true,
	}

	suite.mockAccountService.On("GetAccountByID", mock.Anything, orgID, accountID, userID).Return(account, nil).Once()
	suite.mockAccountService.On("GetAccountBalance", mock.Anything, orgID, accountID, userID).Return(int64(125000), nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", orgID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(accountID, body.AccountID)
	suite.Equal("GEN", body.Code)
	suite.Equal(int64(125000), body.BalanceInCents)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, orgID, accountID, userID).
		Return(nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", orgID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountBalance")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	orgID := uuid.NewString()
	userID := uuid.NewString()

	createReq := dto.CreateAccountRequest{
		Code:        "GEN",
		Description: "General fund",
		TypeID:      uuid.NewString(),
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, orgID, createReq, userID).
		Return(nil, fmt.Errorf("account code %q already exists: %w", "GEN", apperrors.ErrDuplicate)).Once()

	payload, _ := json.Marshal(createReq)
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", orgID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingCode() {
	orgID := uuid.NewString()
	userID := uuid.NewString()

	payload := []byte(`{"description": "General fund", "typeID": "` + uuid.NewString() + `"}`)
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", orgID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	orgID := uuid.NewString()
	userID := uuid.NewString()

	accounts := []domain.Account{
		{AccountID: uuid.NewString(), OrganizationID: orgID, Code: "GEN", IsActive: true},
		{AccountID: uuid.NewString(), OrganizationID: orgID, Code: "YOUTH", IsActive: true},
	}
	suite.mockAccountService.On("ListAccounts", mock.Anything, orgID, userID, 20, 0).Return(accounts, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", orgID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal("GEN", body[0].Code)
	suite.Equal("YOUTH", body[1].Code)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_AlreadyInactive() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, orgID, accountID, userID).
		Return(fmt.Errorf("account %s is already inactive: %w", accountID, apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", orgID, accountID)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_MissingToken() {
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID")
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
