package auth

import (
	"errors"
	"fmt"

	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is configured
const DefaultBcryptCost = 12

// Passwords hashes and checks login passwords at one bcrypt cost
type Passwords struct {
	cost int
}

// NewPasswords creates a hasher. Zero selects DefaultBcryptCost; other values
// are clamped to the range bcrypt accepts.
func NewPasswords(cost int) *Passwords {
	switch {
	case cost == 0:
		cost = DefaultBcryptCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Passwords{cost: cost}
}

// Cost returns the bcrypt cost new hashes are made with
func (p *Passwords) Cost() int {
	return p.cost
}

// Hash hashes a plain password. Empty passwords and passwords longer than
// 72 bytes are rejected as invalid input.
func (p *Passwords) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.NewValidationError("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.NewValidationError("password is longer than 72 bytes")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Check reports whether password matches the stored hash
func (p *Passwords) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Outdated reports whether hash was made with another cost than the configured one
func (p *Passwords) Outdated(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != p.cost
}
