package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/auth"
)

// Services groups the business rules behind every route
type Services struct {
	Auth          AuthService
	Users         UserService
	Students      StudentService
	Trainers      TrainerService
	Courses       CourseService
	Registrations RegistrationService
	Grades        GradeService
}

// NewServices wires every service onto repos
func NewServices(repos *repositories.Repositories, jwt *auth.JWTService, passwords *auth.Passwords, lgr zerolog.Logger) *Services {
	rel := &relations{
		students: repos.Students,
		trainers: repos.Trainers,
		courses:  repos.Courses,
	}
	return &Services{
		Auth:          NewAuthService(repos.Users, jwt, passwords, lgr),
		Users:         NewUserService(repos.Users),
		Students:      NewStudentService(repos.Students),
		Trainers:      NewTrainerService(repos.Trainers),
		Courses:       NewCourseService(repos.Courses, rel),
		Registrations: NewRegistrationService(repos.Registrations, rel),
		Grades:        NewGradeService(repos.Grades, rel),
	}
}

// now is replaced in tests
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }
