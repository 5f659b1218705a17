package repositories

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
)

// PostgresStudentRepository handles student database operations
type PostgresStudentRepository struct {
	table[models.Student]
}

// NewStudentRepository creates a new PostgresStudentRepository
func NewStudentRepository(db *pgxpool.Pool) *PostgresStudentRepository {
	t := newTable[models.Student](db, "etudiants", "student",
		[]string{"matricule", "nom", "prenom", "email", "date_inscription"})
	t.scan = func(row pgx.Row, s *models.Student) error {
		return row.Scan(&s.ID, &s.Matricule, &s.Nom, &s.Prenom, &s.Email, &s.DateInscription)
	}
	t.values = func(s *models.Student) []interface{} {
		return []interface{}{s.Matricule, s.Nom, s.Prenom, s.Email, s.DateInscription}
	}
	t.id = func(s *models.Student) *int64 { return &s.ID }
	return &PostgresStudentRepository{table: t}
}
