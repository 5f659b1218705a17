package pages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/client"
	"github.com/yigit/trainhub/internal/mutation"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/session"
	"github.com/yigit/trainhub/internal/table"
	"github.com/yigit/trainhub/internal/viewmodel"
)

func signedIn(t *testing.T, username, password string) *session.Store {
	t.Helper()
	s := session.NewStore(nil, session.NewMemoryPersister())
	if username != "" {
		_, err := s.Login(context.Background(), username, password)
		require.NoError(t, err)
	}
	return s
}

func TestResolve(t *testing.T) {
	anon := signedIn(t, "", "")
	admin := signedIn(t, "mohamed", "admin123")
	student := signedIn(t, "saleh", "student123")

	tests := []struct {
		name    string
		s       *session.Store
		path    string
		want    session.Route
		wantErr error
	}{
		{name: "root redirects to login", s: admin, path: "/", want: session.RouteLogin},
		{name: "login when signed out", s: anon, path: "/login", want: session.RouteLogin},
		{name: "login when signed in", s: admin, path: "/login", want: session.RouteDashboard},
		{name: "protected when signed out", s: anon, path: "/courses", want: session.RouteLogin},
		{name: "trailing slash", s: admin, path: "/trainers/", want: session.RouteTrainers},
		{name: "role gate", s: student, path: "/students", wantErr: apperrors.ErrPermissionDenied},
		{name: "unknown path", s: admin, path: "/nowhere", wantErr: apperrors.ErrResourceNotFound},
		{name: "unknown path signed out", s: anon, path: "/nowhere", wantErr: apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.s, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNavigation(t *testing.T) {
	titles := func(role models.Role) []string {
		var out []string
		for _, e := range Navigation(role) {
			out = append(out, e.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Dashboard", "Students", "Trainers", "Courses", "Registrations", "Grades"}, titles(models.RoleAdmin))
	assert.Equal(t, []string{"Dashboard", "Courses", "Registrations", "Grades"}, titles(models.RoleStudent))
	assert.Equal(t, []string{"Dashboard", "Students", "Courses", "Grades"}, titles(models.RoleTrainer))
	assert.Empty(t, titles(""))
}

func TestCourseWithoutTrainer(t *testing.T) {
	credits, hours := 3, 40
	course := models.Course{ID: 1, Code: "JAVA101", Titre: "Intro Java", Credits: &credits, Heures: &hours}

	view := table.Build(CourseColumns(signedIn(t, "mohamed", "admin123")), []models.Course{course}, table.Options{EmptyMessage: EmptyCourses})
	require.Len(t, view.Rows, 1)

	byHeader := map[string]table.Cell{}
	for i, h := range view.Headers {
		byHeader[h] = view.Rows[0][i]
	}
	assert.Equal(t, NotAssigned, byHeader["Trainer"].Text)
	assert.Equal(t, "3", byHeader["Credits"].Text)
	assert.Equal(t, "edit, delete", byHeader["Actions"].Text)

	assert.Equal(t, "-", CreditsCell(models.Course{}).Text)
	assert.Equal(t, "Ada Lovelace", TrainerCell(models.Course{Formateur: &models.Trainer{Prenom: "Ada", Nom: "Lovelace"}}).Text)
}

func TestGradeBadge(t *testing.T) {
	assert.Equal(t, table.Cell{Text: "18.50 / 20", Style: StyleGradeHigh}, GradeBadge(18.5))

	tests := []struct {
		value float64
		want  string
	}{
		{20, StyleGradeHigh},
		{16, StyleGradeHigh},
		{15.99, StyleGradeGood},
		{12, StyleGradeGood},
		{10, StyleGradePass},
		{9.99, StyleGradeFail},
		{0, StyleGradeFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeStyle(tt.value), "value %v", tt.value)
	}
}

func TestRegistrationDeleteControl(t *testing.T) {
	regs := []models.Registration{
		{ID: 1, Statut: models.StatusActive, Etudiant: &models.Student{Nom: "Doe", Prenom: "Jane", Matricule: "E1"}},
		{ID: 2, Statut: models.StatusCompleted},
		{ID: 3, Statut: models.StatusCancelled},
	}
	actionsOf := func(s *session.Store) []string {
		view := table.Build(RegistrationColumns(s), regs, table.Options{})
		last := len(view.Headers) - 1
		var out []string
		for _, row := range view.Rows {
			out = append(out, row[last].Text)
		}
		return out
	}

	assert.Equal(t, []string{"delete", "", ""}, actionsOf(signedIn(t, "mohamed", "admin123")))
	assert.Equal(t, []string{"", "", ""}, actionsOf(signedIn(t, "saleh", "student123")))
	assert.Equal(t, []string{"", "", ""}, actionsOf(signedIn(t, "ali", "trainer123")))

	view := table.Build(RegistrationColumns(signedIn(t, "mohamed", "admin123")), regs, table.Options{})
	assert.Equal(t, "Jane Doe (E1)", view.Rows[0][1].Text)
	assert.Equal(t, "-", view.Rows[0][3].Text)
	assert.Equal(t, table.Cell{Text: "Completed", Style: StyleStatusCompleted}, view.Rows[1][4])
}

func TestListView(t *testing.T) {
	c := cache.New(cache.WithRetry(0, time.Millisecond))
	gate := make(chan struct{})
	cache.Register(c, cache.Students, func(ctx context.Context) ([]models.Student, error) {
		<-gate
		return []models.Student{{ID: 1, Nom: "Doe"}, {ID: 2, Nom: "Roe"}}, nil
	})
	page := viewmodel.NewList(viewmodel.StudentDefinition(client.NewClient(nil)), c, mutation.NewCoordinator(c, nil))
	cols := StudentColumns(signedIn(t, "ali", "trainer123"))

	assert.Equal(t, table.LoadingText, ListView(page, cols, EmptyStudents).Placeholder)

	close(gate)
	_, err := cache.Load[models.Student](context.Background(), c, cache.Students)
	require.NoError(t, err)

	page.SetSearch("roe")
	view := ListView(page, cols, EmptyStudents)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "2", view.Rows[0][0].Text)
	assert.Empty(t, view.Rows[0][len(cols)-1].Text)

	page.SetSearch("zzz")
	assert.Equal(t, EmptyStudents, ListView(page, cols, EmptyStudents).Placeholder)
}
