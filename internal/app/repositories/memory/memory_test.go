package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

func TestTable_crud(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	first := &models.Student{Matricule: "E1", Nom: "Doe"}
	second := &models.Student{Matricule: "E2", Nom: "Roe"}
	require.NoError(t, repos.Students.Create(ctx, first))
	require.NoError(t, repos.Students.Create(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	list, err := repos.Students.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "E1", list[0].Matricule)
	assert.Equal(t, "E2", list[1].Matricule)

	second.Nom = "Roe-Smith"
	require.NoError(t, repos.Students.Update(ctx, second))
	got, err := repos.Students.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Roe-Smith", got.Nom)

	require.NoError(t, repos.Students.Delete(ctx, 1))
	_, err = repos.Students.GetByID(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, repos.Students.Delete(ctx, 1), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, repos.Students.Update(ctx, &models.Student{ID: 42}), apperrors.ErrResourceNotFound)
}

func TestTable_uniqueKeys(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	require.NoError(t, repos.Courses.Create(ctx, &models.Course{Code: "JAVA101"}))
	other := &models.Course{Code: "WEB201"}
	require.NoError(t, repos.Courses.Create(ctx, other))

	assert.ErrorIs(t, repos.Courses.Create(ctx, &models.Course{Code: "JAVA101"}), apperrors.ErrConflict)

	other.Code = "JAVA101"
	assert.ErrorIs(t, repos.Courses.Update(ctx, other), apperrors.ErrConflict)

	other.Code = "WEB201"
	other.Titre = "renamed"
	assert.NoError(t, repos.Courses.Update(ctx, other), "a row never conflicts with itself")

	require.NoError(t, repos.Users.Create(ctx, &models.User{Username: "mohamed"}))
	assert.ErrorIs(t, repos.Users.Create(ctx, &models.User{Username: "Mohamed"}), apperrors.ErrConflict)

	u, err := repos.Users.GetByUsername(ctx, "mohamed")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	_, err = repos.Users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRegistrations_hasActive(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	active := &models.Registration{StudentID: 1, CourseID: 2, Statut: models.StatusActive}
	require.NoError(t, repos.Registrations.Create(ctx, active))
	require.NoError(t, repos.Registrations.Create(ctx, &models.Registration{StudentID: 1, CourseID: 3, Statut: models.StatusCancelled}))

	tests := []struct {
		name            string
		student, course int64
		exclude         int64
		want            bool
	}{
		{name: "active pair", student: 1, course: 2, want: true},
		{name: "excluding itself", student: 1, course: 2, exclude: active.ID, want: false},
		{name: "cancelled pair", student: 1, course: 3, want: false},
		{name: "other student", student: 9, course: 2, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repos.Registrations.HasActive(ctx, tt.student, tt.course, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistrations_activePairIsUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	first := &models.Registration{StudentID: 1, CourseID: 2, Statut: models.StatusActive}
	require.NoError(t, repos.Registrations.Create(ctx, first))

	err := repos.Registrations.Create(ctx, &models.Registration{StudentID: 1, CourseID: 2, Statut: models.StatusActive})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, apperrors.ErrActiveRegistrationExists.Error(), err.Error())

	done := &models.Registration{StudentID: 1, CourseID: 2, Statut: models.StatusCompleted}
	require.NoError(t, repos.Registrations.Create(ctx, done))

	done.Statut = models.StatusActive
	assert.ErrorIs(t, repos.Registrations.Update(ctx, done), apperrors.ErrConflict)

	first.Statut = models.StatusCancelled
	require.NoError(t, repos.Registrations.Update(ctx, first))
	require.NoError(t, repos.Registrations.Update(ctx, done))
}

func TestRegistrations_concurrentCreatesKeepOneActive(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	const writers = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repos.Registrations.Create(ctx, &models.Registration{StudentID: 4, CourseID: 5, Statut: models.StatusActive})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	regs, err := repos.Registrations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestDelete_cascades(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	trainer := &models.Trainer{IDFormateur: "F1"}
	require.NoError(t, repos.Trainers.Create(ctx, trainer))
	course := &models.Course{Code: "C1", TrainerID: &trainer.ID}
	require.NoError(t, repos.Courses.Create(ctx, course))
	student := &models.Student{Matricule: "E1"}
	require.NoError(t, repos.Students.Create(ctx, student))
	require.NoError(t, repos.Registrations.Create(ctx, &models.Registration{StudentID: student.ID, CourseID: course.ID}))
	require.NoError(t, repos.Grades.Create(ctx, &models.Grade{StudentID: student.ID, CourseID: course.ID, Valeur: 12}))

	require.NoError(t, repos.Trainers.Delete(ctx, trainer.ID))
	got, err := repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TrainerID)

	require.NoError(t, repos.Students.Delete(ctx, student.ID))
	regs, err := repos.Registrations.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regs)
	grades, err := repos.Grades.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, grades)
}
