package handler

import (
	directoryapp "github.com/facturio/backend/internal/application/directory"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/interfaces/http/dto"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client directory API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *directoryapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *directoryapp.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create godoc
//
//	@ID			createClient
//	@Summary	Create a client
//	@Description	Register a client record mapped to an existing user account
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		request	body		directoryapp.CreateClientRequest	true	"Client"
//	@Success	201		{object}	APIResponse[directoryapp.ClientResponse]
//	@Failure	409		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req directoryapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
//
//	@ID			getClient
//	@Summary	Get a client by ID
//	@Tags		clients
//	@Produce	json
//	@Param		id	path		string	true	"Client ID"	format(uuid)
//	@Success	200	{object}	APIResponse[directoryapp.ClientResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	result, err := h.clientService.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByUser godoc
//
//	@ID			getClientByUser
//	@Summary	Get the client record mapped to a user account
//	@Tags		clients
//	@Produce	json
//	@Param		user_id	path		string	true	"User ID"	format(uuid)
//	@Success	200		{object}	APIResponse[directoryapp.ClientResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/clients/by-user/{user_id} [get]
func (h *ClientHandler) GetByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	result, err := h.clientService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
//
//	@ID			listClients
//	@Summary	List clients
//	@Tags		clients
//	@Produce	json
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Param		search		query		string	false	"Search by name"
//	@Success	200			{object}	APIResponse[[]directoryapp.ClientResponse]
//	@Security	BearerAuth
//	@Router		/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	result, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
//
//	@ID			updateClient
//	@Summary	Update a client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Client ID"	format(uuid)
//	@Param		request	body		directoryapp.UpdateClientRequest	true	"Client"
//	@Success	200		{object}	APIResponse[directoryapp.ClientResponse]
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req directoryapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.clientService.Update(c.Request.Context(), clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
//
//	@ID			deleteClient
//	@Summary	Delete a client
//	@Tags		clients
//	@Param		id	path	string	true	"Client ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ClientRoutes creates the route group for client directory endpoints
func ClientRoutes(handler *ClientHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("clients", "/clients")
	group.Use(authMiddleware)

	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/by-user/:user_id", handler.GetByUser)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)

	return group
}
