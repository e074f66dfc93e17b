package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/grovefund/fund_portal_app/internal/apperrors"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	portsrepo "github.com/grovefund/fund_portal_app/internal/core/ports/repositories"
	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/middleware"
	"github.com/grovefund/fund_portal_app/internal/utils"
)

var ErrInvalidPeriod = fmt.Errorf("%w: report period start must not be after its end", apperrors.ErrValidation)

// reportingService produces read-only reports over posted transactions.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	authorizer    portssvc.OrganizationAuthorizerSvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		authorizer:    authorizer,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// CategoryTotals sums posted amounts per category over the period.
func (s *reportingService) CategoryTotals(ctx context.Context, organizationID string, from time.Time, to time.Time, userID string) ([]domain.CategoryTotal, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}
	totals, err := s.reportingRepo.CategoryTotals(ctx, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}
	return totals, nil
}

// AccountRegister returns an account's register rows, oldest first.
func (s *reportingService) AccountRegister(ctx context.Context, organizationID string, accountID string, from time.Time, to time.Time, userID string) ([]domain.RegisterRow, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	rows, err := s.reportingRepo.AccountRegister(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build account register: %w", err)
	}
	return rows, nil
}

// AccountRegisterXLSX renders the register as a spreadsheet for treasurers
// who reconcile outside the portal.
func (s *reportingService) AccountRegisterXLSX(ctx context.Context, organizationID string, accountID string, from time.Time, to time.Time, userID string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.AccountRegister(ctx, organizationID, accountID, from, to, userID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Description", "Category", "Contact", "Amount", "Running Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.CategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.ContactName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), utils.FormatCentsAsDollars(row.AmountInCents))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), utils.FormatCentsAsDollars(row.RunningInCents))
	}

	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "D", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to render register spreadsheet", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	logger.Info("Register spreadsheet rendered",
		slog.String("account_id", accountID),
		slog.String("account_code", account.Code),
		slog.Int("rows", len(rows)))
	return buf.Bytes(), nil
}
