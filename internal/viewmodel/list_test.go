package viewmodel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/client"
	"github.com/yigit/trainhub/internal/mutation"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// studentStore plays the remote side of the students resource
type studentStore struct {
	items   []models.Student
	nextID  int64
	calls   []string
	failing error
}

func (s *studentStore) list(ctx context.Context) ([]models.Student, error) {
	return append([]models.Student(nil), s.items...), nil
}

func (s *studentStore) definition() Definition[models.Student, dto.StudentForm] {
	def := StudentDefinition(nil)
	def.Create = func(ctx context.Context, f dto.StudentForm) error {
		s.calls = append(s.calls, "create")
		if s.failing != nil {
			return s.failing
		}
		s.nextID++
		s.items = append(s.items, models.Student{ID: s.nextID, Matricule: f.Matricule, Nom: f.Nom, Prenom: f.Prenom, Email: f.Email})
		return nil
	}
	def.Update = func(ctx context.Context, id int64, f dto.StudentForm) error {
		s.calls = append(s.calls, "update")
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Nom = f.Nom
				return nil
			}
		}
		return apperrors.ErrResourceNotFound
	}
	def.Delete = func(ctx context.Context, id int64) error {
		s.calls = append(s.calls, "delete")
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrResourceNotFound
	}
	return def
}

func newStudentsPage(t *testing.T, store *studentStore) (*Students, *cache.Cache, *mutation.Recorder) {
	t.Helper()
	c := cache.New(cache.WithRetry(0, time.Millisecond))
	cache.Register(c, cache.Students, store.list)
	rec := &mutation.Recorder{}
	page := NewList(store.definition(), c, mutation.NewCoordinator(c, rec))
	return page, c, rec
}

func loadStudents(t *testing.T, c *cache.Cache) []models.Student {
	t.Helper()
	items, err := cache.Load[models.Student](context.Background(), c, cache.Students)
	require.NoError(t, err)
	return items
}

func TestFilter_preservesOrder(t *testing.T) {
	items := []models.Student{
		{ID: 3, Nom: "Zidane", Prenom: "Ali"},
		{ID: 1, Nom: "Benali", Prenom: "Sara"},
		{ID: 2, Nom: "Alami", Prenom: "Omar"},
	}
	fields := StudentDefinition(nil).SearchFields

	got := Filter(items, "AL", fields)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})

	got = Filter(items, "sara", fields)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	assert.Len(t, Filter(items, "", fields), 3)
	assert.Empty(t, Filter(items, "nobody", fields))
	assert.Equal(t, int64(3), items[0].ID)
}

func TestList_createThenListIncludesOnce(t *testing.T) {
	store := &studentStore{}
	page, c, rec := newStudentsPage(t, store)
	assert.Empty(t, loadStudents(t, c))

	page.OpenCreate()
	*page.Form() = dto.StudentForm{Matricule: "E001", Nom: "Doe", Prenom: "Jane", Email: "jane@example.com"}
	require.NoError(t, page.Submit(context.Background()))

	items := loadStudents(t, c)
	require.Len(t, items, 1)
	assert.Equal(t, "E001", items[0].Matricule)
	assert.Len(t, page.Items(), 1)

	assert.Equal(t, DialogClosed, page.Mode())
	assert.Equal(t, dto.StudentForm{}, *page.Form())
	last, _ := rec.Last()
	assert.Equal(t, "Student created successfully", last.Message)
}

func TestList_submitRoutesEditToUpdate(t *testing.T) {
	store := &studentStore{items: []models.Student{{ID: 4, Matricule: "E4", Nom: "Old", Prenom: "P", Email: "p@example.com"}}, nextID: 4}
	page, c, _ := newStudentsPage(t, store)
	existing := loadStudents(t, c)[0]

	require.NoError(t, page.OpenEdit(existing))
	assert.Equal(t, DialogForm, page.Mode())
	assert.Equal(t, "Old", page.Form().Nom)
	page.Form().Nom = "New"

	require.NoError(t, page.Submit(context.Background()))
	assert.Equal(t, []string{"update"}, store.calls)
	assert.Equal(t, "New", loadStudents(t, c)[0].Nom)
	assert.Nil(t, page.Active())
}

func TestList_invalidFormSendsNothing(t *testing.T) {
	store := &studentStore{}
	page, _, rec := newStudentsPage(t, store)

	page.OpenCreate()
	page.Form().Nom = "Doe"
	err := page.Submit(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, store.calls)
	assert.Empty(t, rec.All())
	assert.Equal(t, DialogForm, page.Mode())
	assert.Equal(t, "Doe", page.Form().Nom)
}

func TestList_failedWriteKeepsDialog(t *testing.T) {
	store := &studentStore{failing: errors.New("500")}
	page, _, rec := newStudentsPage(t, store)

	page.OpenCreate()
	*page.Form() = dto.StudentForm{Matricule: "E1", Nom: "Doe", Prenom: "Jane", Email: "jane@example.com"}
	require.Error(t, page.Submit(context.Background()))

	assert.Equal(t, DialogForm, page.Mode())
	assert.Equal(t, "E1", page.Form().Matricule)
	last, _ := rec.Last()
	assert.Equal(t, mutation.Notification{Level: mutation.LevelError, Title: "Error", Message: "Failed to create student"}, last)
}

func TestList_deleteThenListExcludes(t *testing.T) {
	store := &studentStore{items: []models.Student{{ID: 1, Matricule: "E1"}, {ID: 2, Matricule: "E2"}}, nextID: 2}
	page, c, _ := newStudentsPage(t, store)
	items := loadStudents(t, c)

	assert.ErrorIs(t, page.ExecuteDelete(context.Background()), ErrNoDialog)

	page.ConfirmDelete(items[0])
	assert.Equal(t, DialogConfirmDelete, page.Mode())
	require.NoError(t, page.ExecuteDelete(context.Background()))

	remaining := loadStudents(t, c)
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].ID)
	assert.Equal(t, DialogClosed, page.Mode())

	// the same id again is an ordinary failure
	page.ConfirmDelete(items[0])
	assert.ErrorIs(t, page.ExecuteDelete(context.Background()), apperrors.ErrResourceNotFound)
	assert.Equal(t, DialogConfirmDelete, page.Mode())
}

func TestList_cancelResets(t *testing.T) {
	page, _, _ := newStudentsPage(t, &studentStore{})
	page.OpenCreate()
	page.Form().Nom = "draft"
	page.Cancel()

	assert.Equal(t, DialogClosed, page.Mode())
	assert.Empty(t, page.Form().Nom)
	assert.ErrorIs(t, page.Submit(context.Background()), ErrNoDialog)
}

func TestDefinitions(t *testing.T) {
	api := client.NewClient(nil)

	course := CourseDefinition(api).Defaults()
	require.NotNil(t, course.Credits)
	require.NotNil(t, course.Heures)
	assert.Equal(t, 3, *course.Credits)
	assert.Equal(t, 40, *course.Heures)

	trainer := models.Trainer{ID: 9}
	form := CourseDefinition(api).ToForm(models.Course{Code: "C", Formateur: &trainer})
	require.NotNil(t, form.FormateurID)
	assert.Equal(t, int64(9), *form.FormateurID)

	assert.Equal(t, models.StatusActive, RegistrationDefinition(api).Defaults().Statut)
	assert.Nil(t, RegistrationDefinition(api).Update)

	regs := NewList(RegistrationDefinition(api), cache.New(), mutation.NewCoordinator(cache.New(), nil))
	assert.False(t, regs.CanEdit())
	assert.ErrorIs(t, regs.OpenEdit(models.Registration{ID: 1}), ErrEditNotSupported)

	fields := GradeDefinition(api).SearchFields(models.Grade{
		Etudiant: &models.Student{Nom: "Doe", Prenom: "Jane"},
		Cours:    &models.Course{Titre: "Intro Java", Code: "JAVA101"},
	})
	assert.Equal(t, []string{"Doe", "Jane", "Intro Java", "JAVA101"}, fields)
	assert.Empty(t, GradeDefinition(api).SearchFields(models.Grade{}))
}

func TestList_findIgnoresSearch(t *testing.T) {
	store := &studentStore{items: []models.Student{{ID: 1, Matricule: "E1", Nom: "Doe"}, {ID: 2, Matricule: "E2", Nom: "Roe"}}, nextID: 2}
	page, c, _ := newStudentsPage(t, store)
	loadStudents(t, c)

	page.SetSearch("doe")
	got, ok := page.Find(2)
	require.True(t, ok)
	assert.Equal(t, "E2", got.Matricule)

	_, ok = page.Find(9)
	assert.False(t, ok)
}

func TestList_itemsRecoverAfterFailedRead(t *testing.T) {
	store := &studentStore{items: []models.Student{{ID: 1, Nom: "Doe"}}}
	page, c, _ := newStudentsPage(t, store)

	var calls atomic.Int32
	cache.Register(c, cache.Students, func(ctx context.Context) ([]models.Student, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return store.list(ctx)
	})

	assert.Empty(t, page.Items())
	require.Eventually(t, func() bool { return page.Err() != nil }, time.Second, time.Millisecond)

	require.Eventually(t, func() bool { return len(page.Items()) == 1 }, time.Second, time.Millisecond)
	assert.NoError(t, page.Err())
	assert.False(t, page.Loading())
	assert.Equal(t, int32(2), calls.Load())
}
