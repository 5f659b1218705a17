package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainhub/internal/app/services"
	"github.com/yigit/trainhub/internal/middleware"
)

// UserController serves the read-only /users routes
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// List handles GET /users
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "user")
	if !ok {
		return
	}

	user, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
