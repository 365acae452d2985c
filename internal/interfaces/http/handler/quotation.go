package handler

import (
	billingapp "github.com/facturio/backend/internal/application/billing"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation API endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *billingapp.QuotationService
	invoiceService   *billingapp.InvoiceService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *billingapp.QuotationService, invoiceService *billingapp.InvoiceService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		invoiceService:   invoiceService,
	}
}

// Create godoc
//
//	@ID				createQuotation
//	@Summary		Create a quotation
//	@Description	Create a new quotation (devis) with its line items
//	@Tags			quotations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		billingapp.CreateQuotationRequest	true	"Quotation"
//	@Success		201		{object}	APIResponse[billingapp.QuotationResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	freelancerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	var req billingapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quotationService.Create(c.Request.Context(), freelancerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
//
//	@ID			getQuotation
//	@Summary	Get a quotation by ID
//	@Tags		quotations
//	@Produce	json
//	@Param		id	path		string	true	"Quotation ID"	format(uuid)
//	@Success	200	{object}	APIResponse[billingapp.QuotationResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	result, err := h.quotationService.GetByID(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
//
//	@ID			listQuotations
//	@Summary	List quotations
//	@Description	Retrieve a paginated list of the authenticated freelancer's quotations
//	@Tags		quotations
//	@Produce	json
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	APIResponse[[]billingapp.QuotationListItemResponse]
//	@Security	BearerAuth
//	@Router		/quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	freelancerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	req := billingapp.ListRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	items, total, err := h.quotationService.List(c.Request.Context(), freelancerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// ListForClient godoc
//
//	@ID			listQuotationsForClient
//	@Summary	List quotations for a client
//	@Description	Retrieve the quotations addressed to a client, identified by the client's user account ID
//	@Tags		quotations
//	@Produce	json
//	@Param		user_id	path		string	true	"Client user ID"	format(uuid)
//	@Success	200		{object}	APIResponse[[]billingapp.QuotationListItemResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/quotations/by-client/{user_id} [get]
func (h *QuotationHandler) ListForClient(c *gin.Context) {
	clientUserID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	req := billingapp.ListRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quotationService.ListForClient(c.Request.Context(), clientUserID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
//
//	@ID			updateQuotation
//	@Summary	Update a quotation
//	@Description	Replace a quotation's header fields and line items
//	@Tags		quotations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Quotation ID"	format(uuid)
//	@Param		request	body		billingapp.UpdateQuotationRequest	true	"Quotation"
//	@Success	200		{object}	APIResponse[billingapp.QuotationResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req billingapp.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quotationService.Update(c.Request.Context(), quotationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ChangeStatus godoc
//
//	@ID			changeQuotationStatus
//	@Summary	Change quotation status
//	@Description	Move a quotation to a new lifecycle status
//	@Tags		quotations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Quotation ID"	format(uuid)
//	@Param		request	body		billingapp.ChangeStatusRequest	true	"New status"
//	@Success	200		{object}	APIResponse[billingapp.QuotationResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/quotations/{id}/status [patch]
func (h *QuotationHandler) ChangeStatus(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	var req billingapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quotationService.ChangeStatus(c.Request.Context(), quotationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListInvoices godoc
//
//	@ID			listQuotationInvoices
//	@Summary	List invoices derived from a quotation
//	@Tags		quotations
//	@Produce	json
//	@Param		id	path		string	true	"Quotation ID"	format(uuid)
//	@Success	200	{object}	APIResponse[[]billingapp.InvoiceListItemResponse]
//	@Security	BearerAuth
//	@Router		/quotations/{id}/invoices [get]
func (h *QuotationHandler) ListInvoices(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	result, err := h.invoiceService.ListByQuotation(c.Request.Context(), quotationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
//
//	@ID			deleteQuotation
//	@Summary	Delete a quotation
//	@Tags		quotations
//	@Param		id	path	string	true	"Quotation ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), quotationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// QuotationRoutes creates the route group for quotation endpoints
func QuotationRoutes(handler *QuotationHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("quotations", "/quotations")
	group.Use(authMiddleware)

	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/by-client/:user_id", handler.ListForClient)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.PATCH("/:id/status", handler.ChangeStatus)
	group.GET("/:id/invoices", handler.ListInvoices)
	group.DELETE("/:id", handler.Delete)

	return group
}
