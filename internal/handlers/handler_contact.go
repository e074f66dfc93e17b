package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/grovefund/fund_portal_app/internal/core/ports/services"
	"github.com/grovefund/fund_portal_app/internal/dto"
	"github.com/grovefund/fund_portal_app/internal/middleware"
)

// contactHandler handles contact and engagement requests.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(contactService portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: contactService}
}

// registerContactRoutes sets up the org-scoped contact routes.
func registerContactRoutes(orgGroup *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := orgGroup.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:contactID", h.getContact)
		contacts.PUT("/:contactID", h.updateContact)
		contacts.POST("/:contactID/engagements", h.addEngagement)
		contacts.GET("/:contactID/engagements", h.listEngagements)
	}
}

// createContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param contact body dto.CreateContactRequest true "New contact"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create contact")
		return
	}

	logger.Info("Contact created", slog.String("contact_id", contact.ContactID))
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ContactResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, err := h.contactService.ListContacts(c.Request.Context(), c.Param("orgID"), userID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contacts")
		return
	}

	responses := make([]dto.ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = dto.ToContactResponse(&contacts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getContact godoc
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param contactID path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts/{contactID} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), c.Param("orgID"), c.Param("contactID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param contactID path string true "Contact ID"
// @Param contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts/{contactID} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), c.Param("orgID"), c.Param("contactID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// addEngagement godoc
// @Summary Record an engagement with a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param contactID path string true "Contact ID"
// @Param engagement body dto.CreateEngagementRequest true "New engagement"
// @Success 201 {object} dto.EngagementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts/{contactID}/engagements [post]
func (h *contactHandler) addEngagement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addEngagement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	engagement, err := h.contactService.AddEngagement(c.Request.Context(), c.Param("orgID"), c.Param("contactID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record engagement")
		return
	}

	c.JSON(http.StatusCreated, dto.EngagementResponse{
		EngagementID: engagement.EngagementID,
		ContactID:    engagement.ContactID,
		Date:         engagement.Date,
		Kind:         engagement.Kind,
		Note:         engagement.Note,
	})
}

// listEngagements godoc
// @Summary List a contact's engagement history
// @Tags contacts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param contactID path string true "Contact ID"
// @Success 200 {array} dto.EngagementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /organizations/{orgID}/contacts/{contactID}/engagements [get]
func (h *contactHandler) listEngagements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	engagements, err := h.contactService.ListEngagements(c.Request.Context(), c.Param("orgID"), c.Param("contactID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list engagements")
		return
	}
	c.JSON(http.StatusOK, dto.ToEngagementResponses(engagements))
}
