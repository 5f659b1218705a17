package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/app/services"
	"github.com/yigit/trainhub/internal/middleware"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/auth"
)

// AuthController handles the session routes
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles the form-encoded POST /login. On success the session token
// is set as an HttpOnly cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.LoginResponse{Status: "error", Message: "Invalid credentials"})
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.LoginResponse{Status: "error", Message: "Invalid credentials"})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.SessionCookieName, session.Token, maxAge, "/", "", false, true)

	user := session.User
	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Status:  dto.LoginStatusSuccess,
		Message: "Login successful",
		User:    &user,
	})
}

// Logout clears the session cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Status: dto.LoginStatusSuccess, Message: "Logged out"})
}
