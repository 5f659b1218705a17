package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/auth"
)

// Session is the outcome of a successful login
type Session struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication operations
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Session, error)
}

type authServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	passwords  *auth.Passwords
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, passwords *auth.Passwords, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		passwords:  passwords,
		logger:     logger,
	}
}

// Login checks the credentials and signs a session token. Unknown users,
// wrong passwords and disabled accounts all yield ErrInvalidCredentials.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Debug().Str("username", username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !s.passwords.Check(user.PasswordHash, password) {
		s.logger.Debug().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if s.passwords.Outdated(user.PasswordHash) {
		s.logger.Warn().Int64("userID", user.ID).Int("cost", s.passwords.Cost()).Msg("Stored password hash uses another bcrypt cost")
	}
	if user.Active != nil && !*user.Active {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &Session{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}
