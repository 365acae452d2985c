package handler

import (
	"time"

	billingapp "github.com/facturio/backend/internal/application/billing"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create godoc
//
//	@ID				createInvoice
//	@Summary		Create an invoice
//	@Description	Create a new invoice (facture), optionally derived from an approved quotation
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		billingapp.CreateInvoiceRequest	true	"Invoice"
//	@Success		201		{object}	APIResponse[billingapp.InvoiceResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	freelancerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), freelancerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
//
//	@ID			getInvoice
//	@Summary	Get an invoice by ID
//	@Tags		invoices
//	@Produce	json
//	@Param		id	path		string	true	"Invoice ID"	format(uuid)
//	@Success	200	{object}	APIResponse[billingapp.InvoiceResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	result, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
//
//	@ID			listInvoices
//	@Summary	List invoices
//	@Description	Retrieve a paginated list of the authenticated freelancer's invoices
//	@Tags		invoices
//	@Produce	json
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		page_size	query		int	false	"Page size"		default(20)
//	@Success	200			{object}	APIResponse[[]billingapp.InvoiceListItemResponse]
//	@Security	BearerAuth
//	@Router		/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
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

	items, total, err := h.invoiceService.List(c.Request.Context(), freelancerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// ListForClient godoc
//
//	@ID			listInvoicesForClient
//	@Summary	List invoices for a client
//	@Description	Retrieve the invoices addressed to a client, identified by the client's user account ID
//	@Tags		invoices
//	@Produce	json
//	@Param		user_id	path		string	true	"Client user ID"	format(uuid)
//	@Success	200		{object}	APIResponse[[]billingapp.InvoiceListItemResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/by-client/{user_id} [get]
func (h *InvoiceHandler) ListForClient(c *gin.Context) {
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

	result, err := h.invoiceService.ListForClient(c.Request.Context(), clientUserID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
//
//	@ID			updateInvoice
//	@Summary	Update an invoice
//	@Description	Replace an invoice's header fields and line items
//	@Tags		invoices
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Invoice ID"	format(uuid)
//	@Param		request	body		billingapp.UpdateInvoiceRequest	true	"Invoice"
//	@Success	200		{object}	APIResponse[billingapp.InvoiceResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.Update(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ChangeStatus godoc
//
//	@ID			changeInvoiceStatus
//	@Summary	Change invoice status
//	@Description	Move an invoice to a new payment status. Marking an invoice
//	paid records the payment time; leaving paid clears it.
//	@Tags		invoices
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Invoice ID"	format(uuid)
//	@Param		request	body		billingapp.ChangeStatusRequest	true	"New status"
//	@Success	200		{object}	APIResponse[billingapp.InvoiceResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/{id}/status [patch]
func (h *InvoiceHandler) ChangeStatus(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.ChangeStatus(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkOverdue godoc
//
//	@ID			markOverdueInvoices
//	@Summary	Sweep overdue invoices
//	@Description	Mark every unpaid invoice whose due date has passed as overdue
//	and return the number of invoices affected
//	@Tags		invoices
//	@Produce	json
//	@Success	200	{object}	APIResponse[CountData]
//	@Security	BearerAuth
//	@Router		/invoices/mark-overdue [post]
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	count, err := h.invoiceService.MarkOverdueInvoices(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, CountData{Count: int64(count)})
}

// Delete godoc
//
//	@ID			deleteInvoice
//	@Summary	Delete an invoice
//	@Tags		invoices
//	@Param		id	path	string	true	"Invoice ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// InvoiceRoutes creates the route group for invoice endpoints
func InvoiceRoutes(handler *InvoiceHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("invoices", "/invoices")
	group.Use(authMiddleware)

	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.POST("/mark-overdue", handler.MarkOverdue)
	group.GET("/by-client/:user_id", handler.ListForClient)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.PATCH("/:id/status", handler.ChangeStatus)
	group.DELETE("/:id", handler.Delete)

	return group
}
