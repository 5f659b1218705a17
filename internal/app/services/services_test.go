package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/app/repositories/memory"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/auth"
	"github.com/yigit/trainhub/internal/pkg/validation"
)

func newTestServices(t *testing.T) (*Services, *repositories.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", SessionExpiration: time.Hour, TokenIssuer: "test"})
	return NewServices(repos, jwt, auth.NewPasswords(bcrypt.MinCost), zerolog.Nop()), repos
}

type fixture struct {
	student *models.Student
	trainer *models.Trainer
	course  *models.Course
}

func newFixture(t *testing.T, s *Services) fixture {
	t.Helper()
	ctx := context.Background()

	student, err := s.Students.Create(ctx, dto.StudentForm{Matricule: "E1", Nom: "Doe", Prenom: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	trainer, err := s.Trainers.Create(ctx, dto.TrainerForm{IDFormateur: "F1", Nom: "Lovelace", Prenom: "Ada", Email: "ada@example.com", Specialite: "Go"})
	require.NoError(t, err)
	course, err := s.Courses.Create(ctx, dto.CourseForm{Code: "GO101", Titre: "Go", FormateurID: &trainer.ID})
	require.NoError(t, err)
	return fixture{student: student, trainer: trainer, course: course}
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServices(t)
	f := newFixture(t, s)

	require.NotNil(t, f.course.Formateur)
	assert.Equal(t, "Ada", f.course.Formateur.Prenom)
	require.NotNil(t, f.course.Actif)
	assert.True(t, *f.course.Actif)

	missing := int64(99)
	_, err := s.Courses.Create(ctx, dto.CourseForm{Code: "X", Titre: "X", FormateurID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = s.Courses.Create(ctx, dto.CourseForm{Code: "GO101", Titre: "Duplicate"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	updated, err := s.Courses.Update(ctx, f.course.ID, dto.CourseForm{Code: "GO101", Titre: "Go, revised"})
	require.NoError(t, err)
	assert.Nil(t, updated.Formateur, "omitting the trainer unassigns it")

	require.NoError(t, s.Trainers.Delete(ctx, f.trainer.ID))
	list, err := s.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Formateur)

	_, err = s.Courses.Get(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentService_validation(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := s.Students.Create(context.Background(), dto.StudentForm{Matricule: "E1", Nom: "Doe", Prenom: "Jane", Email: "not-an-email"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var fields validation.Errors
	require.ErrorAs(t, err, &fields)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
}

func TestRegistrationService(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServices(t)
	f := newFixture(t, s)

	reg, err := s.Registrations.Create(ctx, dto.RegistrationForm{EtudiantID: f.student.ID, CoursID: f.course.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, reg.Statut)
	assert.False(t, reg.DateInscription.IsZero())
	require.NotNil(t, reg.Etudiant)
	require.NotNil(t, reg.Cours)
	assert.Equal(t, "GO101", reg.Cours.Code)

	_, err = s.Registrations.Create(ctx, dto.RegistrationForm{EtudiantID: f.student.ID, CoursID: f.course.ID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, apperrors.CodeActiveRegistration, custom.Code)
	assert.Equal(t, f.student.ID, custom.Details["etudiantId"])
	assert.Equal(t, f.course.ID, custom.Details["coursId"])

	_, err = s.Registrations.Create(ctx, dto.RegistrationForm{EtudiantID: f.student.ID, CoursID: f.course.ID, Statut: models.StatusCompleted})
	assert.NoError(t, err, "only active registrations are unique")

	_, err = s.Registrations.Create(ctx, dto.RegistrationForm{EtudiantID: 99, CoursID: f.course.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	cancelled := models.StatusCancelled
	reg, err = s.Registrations.Update(ctx, reg.ID, dto.RegistrationPatch{Statut: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, reg.Statut)

	again, err := s.Registrations.Create(ctx, dto.RegistrationForm{EtudiantID: f.student.ID, CoursID: f.course.ID})
	require.NoError(t, err, "a cancelled registration frees the pair")

	active := models.StatusActive
	_, err = s.Registrations.Update(ctx, reg.ID, dto.RegistrationPatch{Statut: &active})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	list, err := s.Registrations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, again.ID, list[2].ID)
	require.NotNil(t, list[2].Cours.Formateur)
}

func TestGradeService(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServices(t)
	f := newFixture(t, s)

	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{name: "lower bound", value: 0},
		{name: "upper bound", value: 20},
		{name: "fraction", value: 18.5},
		{name: "negative", value: -0.5, wantErr: true},
		{name: "above twenty", value: 20.5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := s.Grades.Create(ctx, dto.GradeForm{EtudiantID: f.student.ID, CoursID: f.course.ID, Valeur: tt.value})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, g.Valeur)
			assert.NotNil(t, g.DateAttribution)
		})
	}

	grades, err := s.Grades.List(ctx)
	require.NoError(t, err)
	assert.Len(t, grades, 3)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestServices(t)

	hash, err := auth.NewPasswords(bcrypt.MinCost).Hash("secret")
	require.NoError(t, err)
	require.NoError(t, repos.Users.Create(ctx, &models.User{Username: "jane", Role: models.RoleAdmin, PasswordHash: hash}))
	disabled := false
	require.NoError(t, repos.Users.Create(ctx, &models.User{Username: "gone", Role: models.RoleStudent, PasswordHash: hash, Active: &disabled}))

	sess, err := s.Auth.Login(ctx, " jane ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jane", sess.User.Username)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	for _, c := range []struct{ user, pw string }{
		{"jane", "wrong"},
		{"nobody", "secret"},
		{"gone", "secret"},
		{"", "secret"},
		{"jane", ""},
	} {
		_, err := s.Auth.Login(ctx, c.user, c.pw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "%s/%s", c.user, c.pw)
	}
}
