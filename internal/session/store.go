// Package session holds the signed-in identity of the console client and
// the role gates derived from it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// StorageKey is the key the identity is persisted under
const StorageKey = "user"

// ErrAuthentication is the only login failure callers see. Unknown users and
// wrong passwords are not told apart.
var ErrAuthentication = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")

// Authenticator is the remote login endpoint
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// DemoAccount resolves locally without calling the API
type DemoAccount struct {
	Password string
	User     models.User
}

// DemoAccounts are the built-in presentation logins
var DemoAccounts = map[string]DemoAccount{
	"mohamed": {Password: "admin123", User: models.User{ID: 1, Username: "mohamed", Email: "mohamed@demo.com", Role: models.RoleAdmin, FirstName: "Mohamed", LastName: "Admin"}},
	"saleh":   {Password: "student123", User: models.User{ID: 2, Username: "saleh", Email: "saleh@demo.com", Role: models.RoleStudent, FirstName: "Saleh", LastName: "Student"}},
	"ali":     {Password: "trainer123", User: models.User{ID: 3, Username: "ali", Email: "ali@demo.com", Role: models.RoleTrainer, FirstName: "Ali", LastName: "Trainer"}},
}

// Store is the session of one client process
type Store struct {
	mu   sync.RWMutex
	user *models.User

	auth      Authenticator
	persister Persister
	demo      map[string]DemoAccount
	logger    zerolog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithDemoAccounts replaces the local logins; nil disables them
func WithDemoAccounts(accounts map[string]DemoAccount) Option {
	return func(s *Store) {
		s.demo = accounts
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a signed-out store with the demo logins enabled
func NewStore(auth Authenticator, persister Persister, opts ...Option) *Store {
	s := &Store{
		auth:      auth,
		persister: persister,
		demo:      DemoAccounts,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted identity. An unreadable record is removed and
// the store stays signed out.
func (s *Store) Restore() error {
	data, err := s.persister.Load(StorageKey)
	if errors.Is(err, ErrNoRecord) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil || !user.Role.Valid() {
		s.logger.Warn().Msg("discarding unreadable session record")
		if rmErr := s.persister.Remove(StorageKey); rmErr != nil {
			return fmt.Errorf("failed to discard session record: %w", rmErr)
		}
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("session restored")
	return nil
}

// Login resolves the identity and persists it. Every failure is reported as
// ErrAuthentication.
func (s *Store) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.resolve(ctx, username, password)
	if err != nil {
		s.logger.Info().Err(err).Str("username", username).Msg("login rejected")
		return nil, ErrAuthentication
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.persister.Save(StorageKey, data); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("logged in")
	out := *user
	return &out, nil
}

func (s *Store) resolve(ctx context.Context, username, password string) (*models.User, error) {
	if acct, ok := s.demo[username]; ok && acct.Password == password {
		user := acct.User
		return &user, nil
	}

	if s.auth == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if resp.Status != dto.LoginStatusSuccess || resp.User == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCredentials, resp.Message)
	}
	return resp.User, nil
}

// Logout forgets the identity. The remote call is best effort: its failure
// is logged and never returned.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.persister.Remove(StorageKey); err != nil {
		s.logger.Warn().Err(err).Msg("failed to remove persisted session")
	}

	if s.auth != nil {
		if err := s.auth.Logout(ctx); err != nil {
			s.logger.Debug().Err(err).Msg("remote logout failed")
		}
	}
	s.logger.Info().Msg("logged out")
}

// User returns a copy of the current identity, nil when signed out
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether someone is signed in
func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Role returns the current role, empty when signed out
func (s *Store) Role() models.Role {
	if u := s.User(); u != nil {
		return u.Role
	}
	return ""
}

// CanView reports whether the current user may open route
func (s *Store) CanView(route Route) bool {
	return RoleCanView(s.Role(), route)
}

// Capabilities returns the write controls offered on route
func (s *Store) Capabilities(route Route) Capabilities {
	return RoleCapabilities(s.Role(), route)
}

// CanDeleteRegistration reports whether the delete control is shown for reg
func (s *Store) CanDeleteRegistration(reg models.Registration) bool {
	return RoleCanDeleteRegistration(s.Role(), reg)
}
