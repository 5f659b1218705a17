package memory

import (
	"context"
	"strings"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

type userTable struct {
	*table[models.User]
}

func (t userTable) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	found := t.find(func(u *models.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, apperrors.NewResourceNotFoundError("user not found")
	}
	return &found[0], nil
}

type registrationTable struct {
	*table[models.Registration]
}

func (t registrationTable) HasActive(ctx context.Context, studentID, courseID, excludeID int64) (bool, error) {
	found := t.find(func(r *models.Registration) bool {
		return r.StudentID == studentID &&
			r.CourseID == courseID &&
			r.Statut == models.StatusActive &&
			(excludeID == 0 || r.ID != excludeID)
	})
	return len(found) > 0, nil
}

// activePair matches two ACTIVE registrations of one student to one course,
// like the uq_inscriptions_active index
func activePair(a, b *models.Registration) bool {
	return a.Statut == models.StatusActive && b.Statut == models.StatusActive &&
		a.StudentID == b.StudentID && a.CourseID == b.CourseID
}

// NewRepositories creates an empty in-memory store
func NewRepositories() *repositories.Repositories {
	users := newTable("user", func(u *models.User) *int64 { return &u.ID }, func(a, b *models.User) bool {
		return strings.EqualFold(a.Username, b.Username)
	})
	students := newTable("student", func(s *models.Student) *int64 { return &s.ID }, func(a, b *models.Student) bool {
		return a.Matricule == b.Matricule
	})
	trainers := newTable("trainer", func(t *models.Trainer) *int64 { return &t.ID }, func(a, b *models.Trainer) bool {
		return a.IDFormateur == b.IDFormateur
	})
	courses := newTable("course", func(c *models.Course) *int64 { return &c.ID }, func(a, b *models.Course) bool {
		return a.Code == b.Code
	})
	registrations := newTable("registration", func(r *models.Registration) *int64 { return &r.ID }, activePair)
	registrations.conflict = apperrors.NewActiveRegistrationError(0, 0)
	grades := newTable[models.Grade]("grade", func(g *models.Grade) *int64 { return &g.ID }, nil)

	students.onDelete = func(id int64) {
		registrations.deleteWhere(func(r *models.Registration) bool { return r.StudentID == id })
		grades.deleteWhere(func(g *models.Grade) bool { return g.StudentID == id })
	}
	courses.onDelete = func(id int64) {
		registrations.deleteWhere(func(r *models.Registration) bool { return r.CourseID == id })
		grades.deleteWhere(func(g *models.Grade) bool { return g.CourseID == id })
	}
	trainers.onDelete = func(id int64) {
		courses.updateWhere(
			func(c *models.Course) bool { return c.TrainerID != nil && *c.TrainerID == id },
			func(c *models.Course) { c.TrainerID = nil },
		)
	}

	return &repositories.Repositories{
		Users:         userTable{users},
		Students:      students,
		Trainers:      trainers,
		Courses:       courses,
		Registrations: registrationTable{registrations},
		Grades:        grades,
	}
}
