package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
)

// --- Mock OrganizationAuthorizer ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.OrganizationAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReimbursementID(ctx context.Context, requestID string) (*domain.Transaction, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), nextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, receiptIDs []string) error {
	args := m.Called(ctx, txn, receiptIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) error {
	args := m.Called(ctx, out, in)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SumAccountBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock RefDataRepository ---

type MockRefDataRepository struct {
	mock.Mock
}

var _ portsrepo.RefDataRepositoryFacade = (*MockRefDataRepository)(nil)

func (m *MockRefDataRepository) ListItemTypes(ctx context.Context, organizationID string) ([]domain.TransactionItemType, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItemType), args.Error(1)
}

func (m *MockRefDataRepository) ListItemMethods(ctx context.Context, organizationID string) ([]domain.TransactionItemMethod, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItemMethod), args.Error(1)
}

func (m *MockRefDataRepository) ListCategories(ctx context.Context, organizationID string) ([]domain.TransactionCategory, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionCategory), args.Error(1)
}

func (m *MockRefDataRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountType), args.Error(1)
}

func (m *MockRefDataRepository) SaveItemType(ctx context.Context, itemType domain.TransactionItemType) error {
	args := m.Called(ctx, itemType)
	return args.Error(0)
}

func (m *MockRefDataRepository) SaveItemMethod(ctx context.Context, method domain.TransactionItemMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockRefDataRepository) SaveCategory(ctx context.Context, category domain.TransactionCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock ReimbursementRepository ---

type MockReimbursementRepository struct {
	mock.Mock
}

var _ portsrepo.ReimbursementRepositoryFacade = (*MockReimbursementRepository)(nil)

func (m *MockReimbursementRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementRepository) ListRequests(ctx context.Context, organizationID string, status *domain.ReimbursementStatus, limit int, offset int) ([]domain.ReimbursementRequest, error) {
	args := m.Called(ctx, organizationID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementRepository) SaveRequest(ctx context.Context, request domain.ReimbursementRequest, receiptIDs []string) error {
	args := m.Called(ctx, request, receiptIDs)
	return args.Error(0)
}

func (m *MockReimbursementRepository) UpdateStatus(ctx context.Context, requestID string, status domain.ReimbursementStatus, approverNote string, userID string, now time.Time) error {
	args := m.Called(ctx, requestID, status, approverNote, userID, now)
	return args.Error(0)
}

func (m *MockReimbursementRepository) ApproveRequest(ctx context.Context, request domain.ReimbursementRequest, offsetting domain.Transaction) error {
	args := m.Called(ctx, request, offsetting)
	return args.Error(0)
}

func (m *MockReimbursementRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindUserRole(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListUsersInOrganization(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creatorUserID string) error {
	args := m.Called(ctx, org, creatorUserID)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateUserRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, organizationID, role, updatedBy, now)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendStatusChangeNotification(ctx context.Context, email string, requestID string, status domain.ReimbursementStatus) error {
	args := m.Called(ctx, email, requestID, status)
	return args.Error(0)
}
