package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/yigit/trainhub/internal/app/models/dto"
)

// Auth performs the session calls. Login is the only form-encoded request.
type Auth struct {
	api *API
}

// Login posts the credentials; the session cookie lands in the jar
func (a *Auth) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp dto.LoginResponse
	err := a.api.do(ctx, http.MethodPost, PathLogin, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the remote session
func (a *Auth) Logout(ctx context.Context) error {
	return a.api.doJSON(ctx, http.MethodPost, PathLogout, nil, nil)
}
