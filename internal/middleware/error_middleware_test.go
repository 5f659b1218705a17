package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

func serveError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/inscriptions", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/inscriptions", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError(t *testing.T) {
	t.Run("custom code and details", func(t *testing.T) {
		status, body := serveError(t, fmt.Errorf("create: %w", apperrors.NewActiveRegistrationError(4, 7)))

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, apperrors.CodeActiveRegistration, body["code"])
		assert.Equal(t, apperrors.ErrActiveRegistrationExists.Error(), body["message"])
		assert.Equal(t, map[string]interface{}{"etudiantId": float64(4), "coursId": float64(7)}, body["details"])
	})

	t.Run("sentinel defaults", func(t *testing.T) {
		status, body := serveError(t, apperrors.NewResourceNotFoundError("registration not found"))

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, string(dto.ErrorCodeResourceNotFound), body["code"])
		assert.Equal(t, "registration not found", body["message"])
		assert.NotContains(t, body, "details")
	})

	t.Run("internal errors hide custom fields", func(t *testing.T) {
		err := apperrors.NewCustomError(errors.New("pool closed"), "pool closed").WithCode("DB_001")
		status, body := serveError(t, err)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, string(dto.ErrorCodeInternalServer), body["code"])
		assert.Equal(t, "Internal server error", body["message"])
	})
}
