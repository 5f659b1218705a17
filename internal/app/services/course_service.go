package services

import (
	"context"
	"fmt"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations.
// Returned courses carry their trainer.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, form dto.CourseForm) (*models.Course, error)
	Update(ctx context.Context, id int64, form dto.CourseForm) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	rel        *relations
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, rel *relations) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, rel: rel}
}

func (s *courseServiceImpl) List(ctx context.Context) ([]models.Course, error) {
	l, err := s.rel.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	for i := range courses {
		courses[i].Formateur = l.trainer(courses[i].TrainerID)
	}
	return courses, nil
}

func (s *courseServiceImpl) Get(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.rel.attachTrainer(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Create defaults the course to active
func (s *courseServiceImpl) Create(ctx context.Context, form dto.CourseForm) (*models.Course, error) {
	active := true
	course := &models.Course{Actif: &active}
	if err := s.apply(ctx, course, form); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) Update(ctx context.Context, id int64, form dto.CourseForm) (*models.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, course, form); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	return s.courseRepo.Delete(ctx, id)
}

// apply validates form and copies it onto c, resolving the trainer
func (s *courseServiceImpl) apply(ctx context.Context, c *models.Course, f dto.CourseForm) error {
	if err := validation.Struct(f); err != nil {
		return err
	}

	c.Formateur = nil
	c.TrainerID = nil
	if f.FormateurID != nil {
		trainer, err := s.rel.requireTrainer(ctx, *f.FormateurID)
		if err != nil {
			return err
		}
		id := trainer.ID
		c.TrainerID = &id
		c.Formateur = trainer
	}

	c.Code = f.Code
	c.Titre = f.Titre
	c.Description = f.Description
	c.Credits = f.Credits
	c.Heures = f.Heures
	return nil
}
