package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// activeRegistrationIndex is the partial unique index on ACTIVE registrations
const activeRegistrationIndex = "uq_inscriptions_active"

// PostgresRegistrationRepository handles registration database operations
type PostgresRegistrationRepository struct {
	table[models.Registration]
}

// NewRegistrationRepository creates a new PostgresRegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *PostgresRegistrationRepository {
	t := newTable[models.Registration](db, "inscriptions", "registration",
		[]string{"etudiant_id", "cours_id", "date_inscription", "statut"})
	t.scan = func(row pgx.Row, r *models.Registration) error {
		return row.Scan(&r.ID, &r.StudentID, &r.CourseID, &r.DateInscription, &r.Statut)
	}
	t.values = func(r *models.Registration) []interface{} {
		return []interface{}{r.StudentID, r.CourseID, r.DateInscription, r.Statut}
	}
	t.id = func(r *models.Registration) *int64 { return &r.ID }
	t.conflicts = map[string]error{
		activeRegistrationIndex: apperrors.NewActiveRegistrationError(0, 0),
	}
	return &PostgresRegistrationRepository{table: t}
}

// HasActive checks the partial unique index before a write reaches it
func (r *PostgresRegistrationRepository) HasActive(ctx context.Context, studentID, courseID, excludeID int64) (bool, error) {
	where := squirrel.And{
		squirrel.Eq{"etudiant_id": studentID, "cours_id": courseID, "statut": models.StatusActive},
	}
	if excludeID > 0 {
		where = append(where, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := r.sb.Select("1").From(r.name).Where(where).Limit(1).Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build active registration query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, r.mapError("exists", err)
	}
	return exists, nil
}
