package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// reimbursementHandler handles reimbursement request lifecycle requests.
type reimbursementHandler struct {
	reimbService        portssvc.ReimbursementSvcFacade
	transitionValidator *validator.Validate
}

func newReimbursementHandler(reimbService portssvc.ReimbursementSvcFacade) *reimbursementHandler {
	return &reimbursementHandler{
		reimbService:        reimbService,
		transitionValidator: dto.TransitionValidator(),
	}
}

// registerReimbursementRoutes sets up the org-scoped reimbursement routes.
func registerReimbursementRoutes(orgGroup *gin.RouterGroup, reimbService portssvc.ReimbursementSvcFacade) {
	h := newReimbursementHandler(reimbService)

	reimbursements := orgGroup.Group("/reimbursements")
	{
		reimbursements.POST("", h.createRequest)
		reimbursements.GET("", h.listRequests)
		reimbursements.GET("/:requestID", h.getRequest)
		reimbursements.POST("/:requestID/transition", h.transitionRequest)
	}
}

// createRequest godoc
// @Summary Open a reimbursement request
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body dto.CreateReimbursementRequest true "New request"
// @Success 201 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reimbursements [post]
func (h *reimbursementHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		logger.Warn("Invalid amount in reimbursement request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	request, err := h.reimbService.CreateRequest(c.Request.Context(), c.Param("orgID"), input, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create reimbursement request")
		return
	}

	logger.Info("Reimbursement request created", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToReimbursementResponse(request))
}

// getRequest godoc
// @Summary Get a reimbursement request with its receipts
// @Tags reimbursements
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reimbursements/{requestID} [get]
func (h *reimbursementHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.reimbService.GetRequestByID(c.Request.Context(), c.Param("orgID"), c.Param("requestID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve reimbursement request")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(request))
}

// listRequests godoc
// @Summary List reimbursement requests
// @Tags reimbursements
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED, VOID)
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reimbursements [get]
func (h *reimbursementHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListReimbursementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	requests, err := h.reimbService.ListRequests(c.Request.Context(), c.Param("orgID"), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list reimbursement requests")
		return
	}

	responses := make([]dto.ReimbursementResponse, len(requests))
	for i := range requests {
		responses[i] = dto.ToReimbursementResponse(&requests[i])
	}
	c.JSON(http.StatusOK, responses)
}

// transitionRequest godoc
// @Summary Transition a reimbursement request
// @Description Moves the request to the submitted target status. Approving requires amount, category and account, draws down the fund in the same atomic unit and fails with 422 when the balance cannot cover it. Reopening a settled request never reverses a posted transaction.
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param requestID path string true "Request ID"
// @Param transition body dto.TransitionReimbursementRequest true "Target status"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} InsufficientFundsResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/reimbursements/{requestID}/transition [post]
func (h *reimbursementHandler) transitionRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransitionReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transitionRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	// Approval needs amount, category and account; the schema alone cannot
	// express that, so run the cross-field validator.
	if err := h.transitionValidator.Struct(req); err != nil {
		logger.Warn("Transition request failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Approval requires amount, categoryID and accountID"})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		logger.Warn("Invalid amount in transition request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	request, err := h.reimbService.TransitionRequest(c.Request.Context(), c.Param("orgID"), c.Param("requestID"), input, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to transition reimbursement request")
		return
	}

	logger.Info("Reimbursement request transitioned",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)),
	)
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(request))
}
