package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// refDataService exposes org-scoped reference data. Listings are the union of
// global seeded rows and the organization's own rows; creation is admin only
// and always org-scoped, globals are seeded by migration.
type refDataService struct {
	refDataRepo portsrepo.RefDataRepositoryFacade
	authorizer  portssvc.OrganizationAuthorizerSvc
}

// NewRefDataService creates a new RefDataService.
func NewRefDataService(refDataRepo portsrepo.RefDataRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.RefDataSvcFacade {
	return &refDataService{
		refDataRepo: refDataRepo,
		authorizer:  authorizer,
	}
}

var _ portssvc.RefDataSvcFacade = (*refDataService)(nil)

func (s *refDataService) ListItemTypes(ctx context.Context, organizationID string, userID string) ([]domain.TransactionItemType, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	types, err := s.refDataRepo.ListItemTypes(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item types: %w", err)
	}
	return types, nil
}

func (s *refDataService) ListItemMethods(ctx context.Context, organizationID string, userID string) ([]domain.TransactionItemMethod, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	methods, err := s.refDataRepo.ListItemMethods(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item methods: %w", err)
	}
	return methods, nil
}

func (s *refDataService) ListCategories(ctx context.Context, organizationID string, userID string) ([]domain.TransactionCategory, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	categories, err := s.refDataRepo.ListCategories(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *refDataService) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	types, err := s.refDataRepo.ListAccountTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	return types, nil
}

// CreateItemType creates an org-scoped item type. Admin only.
func (s *refDataService) CreateItemType(ctx context.Context, organizationID string, req dto.CreateItemTypeRequest, userID string) (*domain.TransactionItemType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	orgID := organizationID
	itemType := domain.TransactionItemType{
		TypeID:         uuid.NewString(),
		OrganizationID: &orgID,
		Name:           req.Name,
		Direction:      domain.Direction(req.Direction),
	}
	if err := s.refDataRepo.SaveItemType(ctx, itemType); err != nil {
		logger.Error("Failed to save item type", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create item type: %w", err)
	}

	logger.Info("Item type created", slog.String("type_id", itemType.TypeID), slog.String("name", itemType.Name), slog.String("direction", req.Direction))
	return &itemType, nil
}

// CreateItemMethod creates an org-scoped item method. Admin only.
func (s *refDataService) CreateItemMethod(ctx context.Context, organizationID string, req dto.CreateItemMethodRequest, userID string) (*domain.TransactionItemMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	orgID := organizationID
	method := domain.TransactionItemMethod{
		MethodID:       uuid.NewString(),
		OrganizationID: &orgID,
		Name:           req.Name,
	}
	if err := s.refDataRepo.SaveItemMethod(ctx, method); err != nil {
		logger.Error("Failed to save item method", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create item method: %w", err)
	}

	logger.Info("Item method created", slog.String("method_id", method.MethodID), slog.String("name", method.Name))
	return &method, nil
}

// CreateCategory creates an org-scoped category. Admin only.
func (s *refDataService) CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, userID string) (*domain.TransactionCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	orgID := organizationID
	category := domain.TransactionCategory{
		CategoryID:     uuid.NewString(),
		OrganizationID: &orgID,
		Name:           req.Name,
	}
	if err := s.refDataRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}
