package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/app/services"
	"github.com/yigit/trainhub/internal/middleware"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/validation"
)

// ResourceService is the service shape served by ResourceController. C is
// the create body, U the update body.
type ResourceService[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, form C) (*T, error)
	Update(ctx context.Context, id int64, form U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceController serves the JSON CRUD routes of one entity
type ResourceController[T, C, U any] struct {
	service ResourceService[T, C, U]
	noun    string
}

// NewResourceController creates a controller for service
func NewResourceController[T, C, U any](service ResourceService[T, C, U], noun string) *ResourceController[T, C, U] {
	return &ResourceController[T, C, U]{service: service, noun: noun}
}

// Concrete controllers
type (
	StudentController      = ResourceController[models.Student, dto.StudentForm, dto.StudentForm]
	TrainerController      = ResourceController[models.Trainer, dto.TrainerForm, dto.TrainerForm]
	CourseController       = ResourceController[models.Course, dto.CourseForm, dto.CourseForm]
	RegistrationController = ResourceController[models.Registration, dto.RegistrationForm, dto.RegistrationPatch]
	GradeController        = ResourceController[models.Grade, dto.GradeForm, dto.GradeForm]
)

// NewStudentController creates the /etudiants controller
func NewStudentController(s services.StudentService) *StudentController {
	return NewResourceController[models.Student, dto.StudentForm, dto.StudentForm](s, "student")
}

// NewTrainerController creates the /formateurs controller
func NewTrainerController(s services.TrainerService) *TrainerController {
	return NewResourceController[models.Trainer, dto.TrainerForm, dto.TrainerForm](s, "trainer")
}

// NewCourseController creates the /cours controller
func NewCourseController(s services.CourseService) *CourseController {
	return NewResourceController[models.Course, dto.CourseForm, dto.CourseForm](s, "course")
}

// NewRegistrationController creates the /inscriptions controller
func NewRegistrationController(s services.RegistrationService) *RegistrationController {
	return NewResourceController[models.Registration, dto.RegistrationForm, dto.RegistrationPatch](s, "registration")
}

// NewGradeController creates the /notes controller
func NewGradeController(s services.GradeService) *GradeController {
	return NewResourceController[models.Grade, dto.GradeForm, dto.GradeForm](s, "grade")
}

// parseID reads the :id path parameter
func parseID(ctx *gin.Context, noun string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "Invalid "+noun+" ID"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates the request body into form
func bindJSON(ctx *gin.Context, form interface{}, noun string) bool {
	if err := ctx.ShouldBindJSON(form); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			middleware.HandleAPIError(ctx, fields)
		} else {
			middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrBadRequest, "Invalid "+noun+" data"))
		}
		return false
	}
	return true
}

// List handles GET /<resource>
func (c *ResourceController[T, C, U]) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get handles GET /<resource>/:id
func (c *ResourceController[T, C, U]) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, c.noun)
	if !ok {
		return
	}

	item, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create handles POST /<resource>
func (c *ResourceController[T, C, U]) Create(ctx *gin.Context) {
	var form C
	if !bindJSON(ctx, &form, c.noun) {
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Update handles PUT /<resource>/:id
func (c *ResourceController[T, C, U]) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, c.noun)
	if !ok {
		return
	}

	var form U
	if !bindJSON(ctx, &form, c.noun) {
		return
	}

	item, err := c.service.Update(ctx.Request.Context(), id, form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete handles DELETE /<resource>/:id
func (c *ResourceController[T, C, U]) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, c.noun)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
