package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
)

// PostgresGradeRepository handles grade database operations
type PostgresGradeRepository struct {
	table[models.Grade]
}

// NewGradeRepository creates a new PostgresGradeRepository
func NewGradeRepository(db *pgxpool.Pool) *PostgresGradeRepository {
	t := newTable[models.Grade](db, "notes", "grade",
		[]string{"etudiant_id", "cours_id", "valeur", "date_attribution"})
	t.scan = func(row pgx.Row, g *models.Grade) error {
		return row.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.Valeur, &g.DateAttribution)
	}
	t.values = func(g *models.Grade) []interface{} {
		return []interface{}{g.StudentID, g.CourseID, g.Valeur, g.DateAttribution}
	}
	t.id = func(g *models.Grade) *int64 { return &g.ID }
	return &PostgresGradeRepository{table: t}
}
