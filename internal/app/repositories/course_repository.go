package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
)

// PostgresCourseRepository handles course database operations. Only the
// trainer id is stored; services attach the trainer record.
type PostgresCourseRepository struct {
	table[models.Course]
}

// NewCourseRepository creates a new PostgresCourseRepository
func NewCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	t := newTable[models.Course](db, "cours", "course",
		[]string{"code", "titre", "description", "credits", "heures", "actif", "formateur_id"})
	t.scan = func(row pgx.Row, c *models.Course) error {
		return row.Scan(&c.ID, &c.Code, &c.Titre, &c.Description, &c.Credits, &c.Heures, &c.Actif, &c.TrainerID)
	}
	t.values = func(c *models.Course) []interface{} {
		return []interface{}{c.Code, c.Titre, c.Description, c.Credits, c.Heures, c.Actif, c.TrainerID}
	}
	t.id = func(c *models.Course) *int64 { return &c.ID }
	return &PostgresCourseRepository{table: t}
}
