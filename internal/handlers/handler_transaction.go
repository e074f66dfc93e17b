package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// transactionHandler handles ledger posting requests.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func newTransactionHandler(txnService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: txnService}
}

// registerTransactionRoutes sets up the org-scoped transaction routes.
func registerTransactionRoutes(orgGroup *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	txns := orgGroup.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
	}
	orgGroup.POST("/transfers", h.transfer)
}

// createTransaction godoc
// @Summary Post a transaction
// @Description Posts an expense or income entry. Item amounts are dollar strings; each item's sign comes from its type's direction and the transaction total is the sum of the signed items.
// @Tags transactions
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transaction body dto.CreateTransactionRequest true "New transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		logger.Warn("Invalid amount in transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), c.Param("orgID"), input, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int64("amount_in_cents", txn.AmountInCents),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// transfer godoc
// @Summary Transfer between two fund accounts
// @Description Posts the paired debit/credit of an inter-account transfer. Fails with 422 when the source account cannot cover the amount; nothing is written in that case.
// @Tags transactions
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transfer body dto.TransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} InsufficientFundsResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/transfers [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		logger.Warn("Invalid amount in transfer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.txnService.Transfer(c.Request.Context(), c.Param("orgID"), input, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post transfer")
		return
	}

	logger.Info("Transfer posted",
		slog.String("out_transaction_id", result.OutTransactionID),
		slog.String("in_transaction_id", result.InTransactionID),
	)
	c.JSON(http.StatusCreated, result)
}

// getTransaction godoc
// @Summary Get a transaction with its items
// @Tags transactions
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), c.Param("orgID"), c.Param("transactionID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns a filtered, token-paginated page of the organization's postings, newest first.
// @Tags transactions
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param accountID query string false "Filter by account"
// @Param categoryID query string false "Filter by category"
// @Param contactID query string false "Filter by contact"
// @Param dateFrom query string false "Inclusive start date (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive end date (YYYY-MM-DD)"
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Opaque continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.txnService.ListTransactions(c.Request.Context(), c.Param("orgID"), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
