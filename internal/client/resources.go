package client

import (
	"context"
	"net/http"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
)

// Collection paths relative to the API base
const (
	PathLogin         = "/login"
	PathLogout        = "/logout"
	PathUsers         = "/users"
	PathStudents      = "/etudiants"
	PathTrainers      = "/formateurs"
	PathCourses       = "/cours"
	PathRegistrations = "/inscriptions"
	PathGrades        = "/notes"
)

// Registrations has no single-item read and accepts partial updates
type Registrations struct {
	api *API
}

// List fetches every registration
func (r *Registrations) List(ctx context.Context) ([]models.Registration, error) {
	return list[models.Registration](ctx, r.api, PathRegistrations)
}

// Create registers a student to a course
func (r *Registrations) Create(ctx context.Context, form dto.RegistrationForm) (models.Registration, error) {
	return send[models.Registration](ctx, r.api, http.MethodPost, PathRegistrations, form)
}

// Update changes only the fields set in patch
func (r *Registrations) Update(ctx context.Context, id int64, patch dto.RegistrationPatch) (models.Registration, error) {
	return send[models.Registration](ctx, r.api, http.MethodPut, itemPath(PathRegistrations, id), patch)
}

// Delete removes a registration
func (r *Registrations) Delete(ctx context.Context, id int64) error {
	return remove(ctx, r.api, PathRegistrations, id)
}

// Grades has no single-item read
type Grades struct {
	api *API
}

// List fetches every grade
func (g *Grades) List(ctx context.Context) ([]models.Grade, error) {
	return list[models.Grade](ctx, g.api, PathGrades)
}

// Create assigns a grade
func (g *Grades) Create(ctx context.Context, form dto.GradeForm) (models.Grade, error) {
	return send[models.Grade](ctx, g.api, http.MethodPost, PathGrades, form)
}

// Update replaces a grade
func (g *Grades) Update(ctx context.Context, id int64, form dto.GradeForm) (models.Grade, error) {
	return send[models.Grade](ctx, g.api, http.MethodPut, itemPath(PathGrades, id), form)
}

// Delete removes a grade
func (g *Grades) Delete(ctx context.Context, id int64) error {
	return remove(ctx, g.api, PathGrades, id)
}

// Users is read-only
type Users struct {
	api *API
}

// List fetches every user
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, u.api, PathUsers)
}

// Get fetches one user
func (u *Users) Get(ctx context.Context, id int64) (models.User, error) {
	return get[models.User](ctx, u.api, PathUsers, id)
}

// Client groups every resource of the API over one shared transport
type Client struct {
	API           *API
	Auth          *Auth
	Users         *Users
	Students      *Resource[models.Student, dto.StudentForm]
	Trainers      *Resource[models.Trainer, dto.TrainerForm]
	Courses       *Resource[models.Course, dto.CourseForm]
	Registrations *Registrations
	Grades        *Grades
}

// NewClient builds every resource on top of api
func NewClient(api *API) *Client {
	return &Client{
		API:           api,
		Auth:          &Auth{api: api},
		Users:         &Users{api: api},
		Students:      NewResource[models.Student, dto.StudentForm](api, PathStudents),
		Trainers:      NewResource[models.Trainer, dto.TrainerForm](api, PathTrainers),
		Courses:       NewResource[models.Course, dto.CourseForm](api, PathCourses),
		Registrations: &Registrations{api: api},
		Grades:        &Grades{api: api},
	}
}
