package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// reportingHandler handles read-only reporting requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes sets up the org-scoped reporting routes.
func registerReportingRoutes(orgGroup *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := orgGroup.Group("/reports")
	{
		reports.GET("/category-totals", h.categoryTotals)
		reports.GET("/accounts/:accountID/register", h.accountRegister)
		reports.GET("/accounts/:accountID/register.xlsx", h.accountRegisterXLSX)
	}
}

// categoryTotals godoc
// @Summary Category totals over a period
// @Tags reports
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryTotalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reports/category-totals [get]
func (h *reportingHandler) categoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for categoryTotals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}

	totals, err := h.reportingService.CategoryTotals(c.Request.Context(), c.Param("orgID"), params.From, params.To, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute category totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryTotalsResponse(params.From, params.To, totals))
}

// accountRegister godoc
// @Summary Account register over a period
// @Description Returns the account's postings oldest first with running balances.
// @Tags reports
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param accountID path string true "Account ID"
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} domain.RegisterRow
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reports/accounts/{accountID}/register [get]
func (h *reportingHandler) accountRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for accountRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}

	register, err := h.reportingService.AccountRegister(c.Request.Context(), c.Param("orgID"), c.Param("accountID"), params.From, params.To, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build account register")
		return
	}
	c.JSON(http.StatusOK, register)
}

// accountRegisterXLSX godoc
// @Summary Account register as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param orgID path string true "Organization ID"
// @Param accountID path string true "Account ID"
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reports/accounts/{accountID}/register.xlsx [get]
func (h *reportingHandler) accountRegisterXLSX(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for accountRegisterXLSX", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameters"})
		return
	}

	accountID := c.Param("accountID")
	data, err := h.reportingService.AccountRegisterXLSX(c.Request.Context(), c.Param("orgID"), accountID, params.From, params.To, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to render register spreadsheet")
		return
	}

	filename := fmt.Sprintf("register_%s_%s_%s.xlsx", accountID, params.From.Format("2006-01-02"), params.To.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
