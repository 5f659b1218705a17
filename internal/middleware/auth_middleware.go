package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/pkg/auth"
)

// Context keys set by SessionAuth
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware reads the session cookie. When enforce is off every
// request passes and a valid cookie only annotates the context.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	enforce    bool
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, enforce bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		enforce:    enforce,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(http.StatusUnauthorized, code, message, c.Request.URL.Path))
}

// SessionAuth validates the session cookie
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			if m.enforce {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
				return
			}
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			if m.enforce {
				if errors.Is(err, auth.ErrExpiredToken) {
					abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Session has expired")
				} else {
					abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid session")
				}
				return
			}
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired lets the request through when the session role is one of roles
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enforce {
			c.Next()
			return
		}

		value, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		role, _ := value.(models.Role)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(http.StatusForbidden, dto.ErrorCodeForbidden,
				"You don't have sufficient permissions for this operation", c.Request.URL.Path))
	}
}
