// Package dberrors classifies PostgreSQL constraint violations.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// Constraint reports the code and constraint name of a PostgreSQL error.
// ok is false for any other error.
func Constraint(err error) (code, name string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err is a unique violation
func IsUniqueViolation(err error) bool {
	code, _, ok := Constraint(err)
	return ok && code == CodeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a unique violation of
// the named constraint
func IsDuplicateConstraintError(err error, constraintName string) bool {
	code, name, ok := Constraint(err)
	return ok && code == CodeUniqueViolation && name == constraintName
}
