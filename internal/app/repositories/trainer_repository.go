package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
)

// PostgresTrainerRepository handles trainer database operations
type PostgresTrainerRepository struct {
	table[models.Trainer]
}

// NewTrainerRepository creates a new PostgresTrainerRepository
func NewTrainerRepository(db *pgxpool.Pool) *PostgresTrainerRepository {
	t := newTable[models.Trainer](db, "formateurs", "trainer",
		[]string{"id_formateur", "nom", "prenom", "email", "specialite"})
	t.scan = func(row pgx.Row, f *models.Trainer) error {
		return row.Scan(&f.ID, &f.IDFormateur, &f.Nom, &f.Prenom, &f.Email, &f.Specialite)
	}
	t.values = func(f *models.Trainer) []interface{} {
		return []interface{}{f.IDFormateur, f.Nom, f.Prenom, f.Email, f.Specialite}
	}
	t.id = func(f *models.Trainer) *int64 { return &f.ID }
	return &PostgresTrainerRepository{table: t}
}
