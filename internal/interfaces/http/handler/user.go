package handler

import (
	directoryapp "github.com/facturio/backend/internal/application/directory"
	"github.com/facturio/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler serves read-only account profiles. Account management and
// authentication live in the identity service.
type UserHandler struct {
	BaseHandler
	userService *directoryapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *directoryapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe godoc
//
//	@ID			getCurrentUser
//	@Summary	Get the authenticated user's profile
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	APIResponse[directoryapp.UserResponse]
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User ID not found")
		return
	}

	result, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Get godoc
//
//	@ID			getUser
//	@Summary	Get a user profile
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"	format(uuid)
//	@Success	200	{object}	APIResponse[directoryapp.UserResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	result, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// UserRoutes creates the route group for user profile endpoints
func UserRoutes(handler *UserHandler, authMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("users", "/users")
	group.Use(authMiddleware)

	group.GET("/me", handler.GetMe)
	group.GET("/:id", handler.Get)

	return group
}
