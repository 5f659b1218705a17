package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// Shared repository errors
var (
	ErrNotFound = apperrors.ErrResourceNotFound
	ErrConflict = apperrors.ErrConflict
)

// CRUD is the storage contract shared by the catalogue entities. Lists are
// ordered by id; Create assigns the id on the given record.
type CRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

// Entity repositories
type (
	StudentRepository = CRUD[models.Student]
	TrainerRepository = CRUD[models.Trainer]
	CourseRepository  = CRUD[models.Course]
	GradeRepository   = CRUD[models.Grade]
)

// RegistrationRepository also answers the one-active-registration rule
type RegistrationRepository interface {
	CRUD[models.Registration]

	// HasActive reports whether another ACTIVE registration links student
	// and course. excludeID is ignored when zero.
	HasActive(ctx context.Context, studentID, courseID, excludeID int64) (bool, error)
}

// UserRepository stores login identities
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users         UserRepository
	Students      StudentRepository
	Trainers      TrainerRepository
	Courses       CourseRepository
	Registrations RegistrationRepository
	Grades        GradeRepository
}

// NewRepositories initializes the Postgres repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Students:      NewStudentRepository(db),
		Trainers:      NewTrainerRepository(db),
		Courses:       NewCourseRepository(db),
		Registrations: NewRegistrationRepository(db),
		Grades:        NewGradeRepository(db),
	}
}
