package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models"
)

func TestJWTService_roundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", SessionExpiration: time.Hour, TokenIssuer: "trainhub"})

	token, expiresAt, err := svc.GenerateSessionToken(&models.User{ID: 7, Username: "mohamed", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "trainhub", claims.Issuer)
}

func TestJWTService_rejects(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", SessionExpiration: time.Hour})
	other := NewJWTService(JWTConfig{SecretKey: "other-secret", SessionExpiration: time.Hour})
	expired := NewJWTService(JWTConfig{SecretKey: "test-secret", SessionExpiration: -time.Hour})

	foreign, _, err := other.GenerateSessionToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	stale, _, err := expired.GenerateSessionToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = svc.ValidateToken(stale)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
