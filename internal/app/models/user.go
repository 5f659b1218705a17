package models

import "time"

// User is an authenticated identity. The role is fixed for a session.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Active       *bool      `json:"active,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	PasswordHash string     `json:"-"`
}

// DisplayName returns "First Last", falling back to the username
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.Username
}
