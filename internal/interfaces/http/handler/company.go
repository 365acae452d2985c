package handler

import (
	directoryapp "github.com/facturio/backend/internal/application/directory"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company directory API endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *directoryapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *directoryapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Create godoc
//
//	@ID			createCompany
//	@Summary	Create a company
//	@Description	Create a company profile for the authenticated freelancer.
//	The first company automatically becomes the default.
//	@Tags		companies
//	@Accept		json
//	@Produce	json
//	@Param		request	body		directoryapp.CreateCompanyRequest	true	"Company"
//	@Success	201		{object}	APIResponse[directoryapp.CompanyResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	var req directoryapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.companyService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
//
//	@ID			getCompany
//	@Summary	Get a company by ID
//	@Tags		companies
//	@Produce	json
//	@Param		id	path		string	true	"Company ID"	format(uuid)
//	@Success	200	{object}	APIResponse[directoryapp.CompanyResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	result, err := h.companyService.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
//
//	@ID			listCompanies
//	@Summary	List the authenticated freelancer's companies
//	@Tags		companies
//	@Produce	json
//	@Success	200	{object}	APIResponse[[]directoryapp.CompanyResponse]
//	@Security	BearerAuth
//	@Router		/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	result, err := h.companyService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetDefault godoc
//
//	@ID			getDefaultCompany
//	@Summary	Get the authenticated freelancer's default company
//	@Tags		companies
//	@Produce	json
//	@Success	200	{object}	APIResponse[directoryapp.CompanyResponse]
//	@Failure	422	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies/default [get]
func (h *CompanyHandler) GetDefault(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	result, err := h.companyService.GetDefault(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
//
//	@ID			updateCompany
//	@Summary	Update a company
//	@Tags		companies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Company ID"	format(uuid)
//	@Param		request	body		directoryapp.UpdateCompanyRequest	true	"Company"
//	@Success	200		{object}	APIResponse[directoryapp.CompanyResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	var req directoryapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.companyService.Update(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetDefault godoc
//
//	@ID			setDefaultCompany
//	@Summary	Set a company as the default
//	@Description	Promote a company to default for invoicing. The flag is
//	cleared on the owner's other companies.
//	@Tags		companies
//	@Produce	json
//	@Param		id	path		string	true	"Company ID"	format(uuid)
//	@Success	200	{object}	APIResponse[directoryapp.CompanyResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies/{id}/default [patch]
func (h *CompanyHandler) SetDefault(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	result, err := h.companyService.SetDefault(c.Request.Context(), companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
//
//	@ID			deleteCompany
//	@Summary	Delete a company
//	@Description	Delete a company profile. The default company cannot be
//	deleted while other companies exist.
//	@Tags		companies
//	@Param		id	path	string	true	"Company ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), companyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CompanyRoutes creates the route group for company directory endpoints
func CompanyRoutes(handler *CompanyHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("companies", "/companies")
	group.Use(authMiddleware)

	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/default", handler.GetDefault)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.PATCH("/:id/default", handler.SetDefault)
	group.DELETE("/:id", handler.Delete)

	return group
}
