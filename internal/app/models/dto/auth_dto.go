package dto

import "github.com/yigit/trainhub/internal/app/models"

// LoginStatusSuccess is the status reported by a successful login
const LoginStatusSuccess = "success"

// LoginRequest is the form-encoded body of POST /login
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginResponse is returned by POST /login
type LoginResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// SuccessResponse represents a bare acknowledgement
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
