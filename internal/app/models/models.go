// Package models holds the records exchanged with the training-center API.
// Wire names follow the API (nom, prenom, titre, formateur, ...).
package models

// Role defines the user role type
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "ETUDIANT"
	RoleTrainer Role = "FORMATEUR"
)

// Roles lists every known role
var Roles = []Role{RoleAdmin, RoleStudent, RoleTrainer}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleTrainer:
		return true
	}
	return false
}

// Label returns the English display name of the role
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStudent:
		return "Student"
	case RoleTrainer:
		return "Trainer"
	}
	return string(r)
}

// RegistrationStatus is the lifecycle state of a registration
type RegistrationStatus string

const (
	StatusActive    RegistrationStatus = "ACTIVE"
	StatusCompleted RegistrationStatus = "COMPLETEE"
	StatusCancelled RegistrationStatus = "ANNULEE"
)

// Valid reports whether s is a known registration status
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the English display name of the status
func (s RegistrationStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
