package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// refDataHandler handles reference data requests: item types, item methods,
// categories and account types.
type refDataHandler struct {
	refDataService portssvc.RefDataSvcFacade
}

func newRefDataHandler(refDataService portssvc.RefDataSvcFacade) *refDataHandler {
	return &refDataHandler{refDataService: refDataService}
}

// registerRefDataRoutes sets up the org-scoped reference data routes plus the
// global account type listing.
func registerRefDataRoutes(v1 *gin.RouterGroup, orgGroup *gin.RouterGroup, refDataService portssvc.RefDataSvcFacade) {
	h := newRefDataHandler(refDataService)

	v1.GET("/account-types", h.listAccountTypes)

	refdata := orgGroup.Group("/refdata")
	{
		refdata.GET("/item-types", h.listItemTypes)
		refdata.POST("/item-types", h.createItemType)
		refdata.GET("/item-methods", h.listItemMethods)
		refdata.POST("/item-methods", h.createItemMethod)
		refdata.GET("/categories", h.listCategories)
		refdata.POST("/categories", h.createCategory)
	}
}

// listAccountTypes godoc
// @Summary List account types
// @Tags refdata
// @Produce json
// @Success 200 {array} domain.AccountType
// @Failure 500 {object} ErrorResponse
// @Router /account-types [get]
func (h *refDataHandler) listAccountTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	types, err := h.refDataService.ListAccountTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list account types")
		return
	}
	c.JSON(http.StatusOK, types)
}

// listItemTypes godoc
// @Summary List transaction item types visible to the organization
// @Description Returns global defaults plus the organization's own types.
// @Tags refdata
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {array} dto.ItemTypeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/item-types [get]
func (h *refDataHandler) listItemTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	types, err := h.refDataService.ListItemTypes(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list item types")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemTypeResponses(types))
}

// createItemType godoc
// @Summary Create an org-scoped item type
// @Tags refdata
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param itemType body dto.CreateItemTypeRequest true "New item type"
// @Success 201 {object} dto.ItemTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/item-types [post]
func (h *refDataHandler) createItemType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateItemTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createItemType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	itemType, err := h.refDataService.CreateItemType(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item type")
		return
	}

	c.JSON(http.StatusCreated, dto.ItemTypeResponse{
		TypeID:    itemType.TypeID,
		Name:      itemType.Name,
		Direction: string(itemType.Direction),
		IsGlobal:  false,
	})
}

// listItemMethods godoc
// @Summary List payment methods visible to the organization
// @Tags refdata
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {array} dto.ItemMethodResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/item-methods [get]
func (h *refDataHandler) listItemMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	methods, err := h.refDataService.ListItemMethods(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list item methods")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemMethodResponses(methods))
}

// createItemMethod godoc
// @Summary Create an org-scoped payment method
// @Tags refdata
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param method body dto.CreateItemMethodRequest true "New method"
// @Success 201 {object} dto.ItemMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/item-methods [post]
func (h *refDataHandler) createItemMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateItemMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createItemMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	method, err := h.refDataService.CreateItemMethod(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item method")
		return
	}

	c.JSON(http.StatusCreated, dto.ItemMethodResponse{
		MethodID: method.MethodID,
		Name:     method.Name,
		IsGlobal: false,
	})
}

// listCategories godoc
// @Summary List reporting categories visible to the organization
// @Tags refdata
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {array} dto.CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/categories [get]
func (h *refDataHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	categories, err := h.refDataService.ListCategories(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// createCategory godoc
// @Summary Create an org-scoped reporting category
// @Tags refdata
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param category body dto.CreateCategoryRequest true "New category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/refdata/categories [post]
func (h *refDataHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	category, err := h.refDataService.CreateCategory(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryResponse{
		CategoryID: category.CategoryID,
		Name:       category.Name,
		IsGlobal:   false,
	})
}
