package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
)

// PostgresUserRepository handles login identities
type PostgresUserRepository struct {
	table[models.User]
}

// NewUserRepository creates a new PostgresUserRepository
func NewUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	t := newTable[models.User](db, "users", "user",
		[]string{"username", "email", "password_hash", "role", "first_name", "last_name", "active", "created_at"})
	t.scan = func(row pgx.Row, u *models.User) error {
		return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Active, &u.CreatedAt)
	}
	t.values = func(u *models.User) []interface{} {
		active := true
		if u.Active != nil {
			active = *u.Active
		}
		createdAt := time.Now()
		if u.CreatedAt != nil {
			createdAt = *u.CreatedAt
		}
		return []interface{}{u.Username, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, active, createdAt}
	}
	t.id = func(u *models.User) *int64 { return &u.ID }
	return &PostgresUserRepository{table: t}
}

// GetByUsername retrieves a user by login name
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"username": username})
}
