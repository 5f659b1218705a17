package viewmodel

import (
	"context"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/client"
	"github.com/yigit/trainhub/internal/mutation"
)

// Form defaults for a new course
const (
	DefaultCourseCredits = 3
	DefaultCourseHours   = 40
)

// Concrete list pages
type (
	Students      = List[models.Student, dto.StudentForm]
	Trainers      = List[models.Trainer, dto.TrainerForm]
	Courses       = List[models.Course, dto.CourseForm]
	Registrations = List[models.Registration, dto.RegistrationForm]
	Grades        = List[models.Grade, dto.GradeForm]
)

// RegisterLoaders binds every cache kind to its list call
func RegisterLoaders(c *cache.Cache, api *client.Client) {
	cache.Register(c, cache.Users, api.Users.List)
	cache.Register(c, cache.Students, api.Students.List)
	cache.Register(c, cache.Trainers, api.Trainers.List)
	cache.Register(c, cache.Courses, api.Courses.List)
	cache.Register(c, cache.Registrations, api.Registrations.List)
	cache.Register(c, cache.Grades, api.Grades.List)
}

// StudentDefinition searches matricule, names and email
func StudentDefinition(api *client.Client) Definition[models.Student, dto.StudentForm] {
	return Definition[models.Student, dto.StudentForm]{
		Kind:     cache.Students,
		Noun:     "Student",
		Defaults: func() dto.StudentForm { return dto.StudentForm{} },
		ToForm: func(s models.Student) dto.StudentForm {
			return dto.StudentForm{Matricule: s.Matricule, Nom: s.Nom, Prenom: s.Prenom, Email: s.Email}
		},
		ID: func(s models.Student) int64 { return s.ID },
		SearchFields: func(s models.Student) []string {
			return []string{s.Nom, s.Prenom, s.Matricule, s.Email}
		},
		Create: func(ctx context.Context, f dto.StudentForm) error {
			_, err := api.Students.Create(ctx, f)
			return err
		},
		Update: func(ctx context.Context, id int64, f dto.StudentForm) error {
			_, err := api.Students.Update(ctx, id, f)
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return api.Students.Delete(ctx, id)
		},
	}
}

// TrainerDefinition searches names, specialty and email
func TrainerDefinition(api *client.Client) Definition[models.Trainer, dto.TrainerForm] {
	return Definition[models.Trainer, dto.TrainerForm]{
		Kind:     cache.Trainers,
		Noun:     "Trainer",
		Defaults: func() dto.TrainerForm { return dto.TrainerForm{} },
		ToForm: func(t models.Trainer) dto.TrainerForm {
			return dto.TrainerForm{IDFormateur: t.IDFormateur, Nom: t.Nom, Prenom: t.Prenom, Email: t.Email, Specialite: t.Specialite}
		},
		ID: func(t models.Trainer) int64 { return t.ID },
		SearchFields: func(t models.Trainer) []string {
			return []string{t.Nom, t.Prenom, t.Specialite, t.Email}
		},
		Create: func(ctx context.Context, f dto.TrainerForm) error {
			_, err := api.Trainers.Create(ctx, f)
			return err
		},
		Update: func(ctx context.Context, id int64, f dto.TrainerForm) error {
			_, err := api.Trainers.Update(ctx, id, f)
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return api.Trainers.Delete(ctx, id)
		},
	}
}

// CourseDefinition searches title, code and description
func CourseDefinition(api *client.Client) Definition[models.Course, dto.CourseForm] {
	return Definition[models.Course, dto.CourseForm]{
		Kind: cache.Courses,
		Noun: "Course",
		Defaults: func() dto.CourseForm {
			credits, hours := DefaultCourseCredits, DefaultCourseHours
			return dto.CourseForm{Credits: &credits, Heures: &hours}
		},
		ToForm: func(c models.Course) dto.CourseForm {
			form := dto.CourseForm{
				Code:        c.Code,
				Titre:       c.Titre,
				Description: c.Description,
				Credits:     copyPtr(c.Credits),
				Heures:      copyPtr(c.Heures),
			}
			if c.Formateur != nil {
				id := c.Formateur.ID
				form.FormateurID = &id
			}
			return form
		},
		ID: func(c models.Course) int64 { return c.ID },
		SearchFields: func(c models.Course) []string {
			return []string{c.Titre, c.Code, c.Description}
		},
		Create: func(ctx context.Context, f dto.CourseForm) error {
			_, err := api.Courses.Create(ctx, f)
			return err
		},
		Update: func(ctx context.Context, id int64, f dto.CourseForm) error {
			_, err := api.Courses.Update(ctx, id, f)
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return api.Courses.Delete(ctx, id)
		},
	}
}

// RegistrationDefinition searches student names and course title/code. The
// page only creates and cancels registrations.
func RegistrationDefinition(api *client.Client) Definition[models.Registration, dto.RegistrationForm] {
	return Definition[models.Registration, dto.RegistrationForm]{
		Kind: cache.Registrations,
		Noun: "Registration",
		Defaults: func() dto.RegistrationForm {
			return dto.RegistrationForm{Statut: models.StatusActive}
		},
		ToForm: func(r models.Registration) dto.RegistrationForm {
			return dto.RegistrationForm{EtudiantID: studentID(r.Etudiant), CoursID: courseID(r.Cours), Statut: r.Statut}
		},
		ID: func(r models.Registration) int64 { return r.ID },
		SearchFields: func(r models.Registration) []string {
			return append(studentFields(r.Etudiant), courseFields(r.Cours)...)
		},
		Create: func(ctx context.Context, f dto.RegistrationForm) error {
			_, err := api.Registrations.Create(ctx, f)
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return api.Registrations.Delete(ctx, id)
		},
		Texts: map[mutation.Action]Texts{
			mutation.Delete: {Success: "Registration cancelled successfully", Failure: "Failed to cancel registration"},
		},
	}
}

// GradeDefinition searches student names and course title/code
func GradeDefinition(api *client.Client) Definition[models.Grade, dto.GradeForm] {
	return Definition[models.Grade, dto.GradeForm]{
		Kind:     cache.Grades,
		Noun:     "Grade",
		Defaults: func() dto.GradeForm { return dto.GradeForm{} },
		ToForm: func(g models.Grade) dto.GradeForm {
			return dto.GradeForm{EtudiantID: studentID(g.Etudiant), CoursID: courseID(g.Cours), Valeur: g.Valeur}
		},
		ID: func(g models.Grade) int64 { return g.ID },
		SearchFields: func(g models.Grade) []string {
			return append(studentFields(g.Etudiant), courseFields(g.Cours)...)
		},
		Create: func(ctx context.Context, f dto.GradeForm) error {
			_, err := api.Grades.Create(ctx, f)
			return err
		},
		Update: func(ctx context.Context, id int64, f dto.GradeForm) error {
			_, err := api.Grades.Update(ctx, id, f)
			return err
		},
		Delete: func(ctx context.Context, id int64) error {
			return api.Grades.Delete(ctx, id)
		},
		Texts: map[mutation.Action]Texts{
			mutation.Create: {Success: "Grade assigned successfully", Failure: "Failed to assign grade"},
		},
	}
}

// Pages groups the five list pages over one cache and coordinator
type Pages struct {
	Students      *Students
	Trainers      *Trainers
	Courses       *Courses
	Registrations *Registrations
	Grades        *Grades
}

// NewPages builds every list page
func NewPages(api *client.Client, source Reader, mutations Performer) *Pages {
	return &Pages{
		Students:      NewList(StudentDefinition(api), source, mutations),
		Trainers:      NewList(TrainerDefinition(api), source, mutations),
		Courses:       NewList(CourseDefinition(api), source, mutations),
		Registrations: NewList(RegistrationDefinition(api), source, mutations),
		Grades:        NewList(GradeDefinition(api), source, mutations),
	}
}

func studentID(s *models.Student) int64 {
	if s == nil {
		return 0
	}
	return s.ID
}

func courseID(c *models.Course) int64 {
	if c == nil {
		return 0
	}
	return c.ID
}

func studentFields(s *models.Student) []string {
	if s == nil {
		return nil
	}
	return []string{s.Nom, s.Prenom}
}

func courseFields(c *models.Course) []string {
	if c == nil {
		return nil
	}
	return []string{c.Titre, c.Code}
}

func copyPtr[V any](p *V) *V {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
