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

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockOrgRepo  *MockOrganizationRepository
	mockUserRepo *MockUserRepository
	service      portssvc.OrganizationSvcFacade

	organizationID string
	userID         string
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewOrganizationService(suite.mockOrgRepo, suite.mockUserRepo)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *OrganizationServiceTestSuite) membership(role domain.UserOrganizationRole) *domain.UserOrganization {
	return &domain.UserOrganization{
		UserID:         suite.userID,
		OrganizationID: suite.organizationID,
		Role:           role,
	}
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_RoleRanking() {
	testCases := []struct {
		name     string
		held     domain.UserOrganizationRole
		required domain.UserOrganizationRole
		wantErr  error
	}{
		{"admin may act as member", domain.RoleAdmin, domain.RoleMember, nil},
		{"admin may act as admin", domain.RoleAdmin, domain.RoleAdmin, nil},
		{"member may act as readonly", domain.RoleMember, domain.RoleReadOnly, nil},
		{"member may not act as admin", domain.RoleMember, domain.RoleAdmin, apperrors.ErrForbidden},
		{"readonly may not act as member", domain.RoleReadOnly, domain.RoleMember, apperrors.ErrForbidden},
		{"removed may not even read", domain.RoleRemoved, domain.RoleReadOnly, apperrors.ErrForbidden},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			ctx := context.Background()
			suite.mockOrgRepo.On("FindUserRole", ctx, suite.userID, suite.organizationID).Return(suite.membership(tc.held), nil).Once()

			err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.organizationID, tc.required)

			if tc.wantErr == nil {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, tc.wantErr)
			}
		})
	}
}

func (suite *OrganizationServiceTestSuite) TestAuthorizeUserAction_NonMember() {
	ctx := context.Background()
	suite.mockOrgRepo.On("FindUserRole", ctx, suite.userID, suite.organizationID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.organizationID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrganizationServiceTestSuite) TestCreateOrganization_CreatorBecomesAdmin() {
	ctx := context.Background()
	req := dto.CreateOrganizationRequest{Name: "Riverside PTA"}

	suite.mockOrgRepo.On("SaveOrganization", ctx, mock.MatchedBy(func(org domain.Organization) bool {
		return org.Name == "Riverside PTA" && org.IsActive && org.CreatedBy == suite.userID
	}), suite.userID).Return(nil).Once()

	org, err := suite.service.CreateOrganization(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(org)
	suite.NotEmpty(org.OrganizationID)
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

func (suite *OrganizationServiceTestSuite) TestUpdateUserRole_CannotChangeOwnRole() {
	ctx := context.Background()
	suite.mockOrgRepo.On("FindUserRole", ctx, suite.userID, suite.organizationID).Return(suite.membership(domain.RoleAdmin), nil).Once()

	err := suite.service.UpdateUserRole(ctx, suite.organizationID, suite.userID, dto.UpdateUserRoleRequest{Role: "MEMBER"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
