package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/repositories"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

// relations resolves the records embedded in API responses
type relations struct {
	students repositories.StudentRepository
	trainers repositories.TrainerRepository
	courses  repositories.CourseRepository
}

// lookup is a snapshot of the related records for one list response
type lookup struct {
	students map[int64]models.Student
	trainers map[int64]models.Trainer
	courses  map[int64]models.Course
}

func (r *relations) snapshot(ctx context.Context, withStudents bool) (*lookup, error) {
	l := &lookup{
		students: map[int64]models.Student{},
		trainers: map[int64]models.Trainer{},
		courses:  map[int64]models.Course{},
	}

	trainers, err := r.trainers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving trainers: %w", err)
	}
	for _, t := range trainers {
		l.trainers[t.ID] = t
	}

	courses, err := r.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	for _, c := range courses {
		l.courses[c.ID] = c
	}

	if withStudents {
		students, err := r.students.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error retrieving students: %w", err)
		}
		for _, s := range students {
			l.students[s.ID] = s
		}
	}
	return l, nil
}

// course returns the course with its trainer attached, nil when unknown
func (l *lookup) course(id int64) *models.Course {
	c, ok := l.courses[id]
	if !ok {
		return nil
	}
	c.Formateur = l.trainer(c.TrainerID)
	return &c
}

func (l *lookup) trainer(id *int64) *models.Trainer {
	if id == nil {
		return nil
	}
	t, ok := l.trainers[*id]
	if !ok {
		return nil
	}
	return &t
}

func (l *lookup) student(id int64) *models.Student {
	s, ok := l.students[id]
	if !ok {
		return nil
	}
	return &s
}

// requireStudent loads a referenced student; a missing one is a validation error
func (r *relations) requireStudent(ctx context.Context, id int64) (*models.Student, error) {
	s, err := r.students.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("student %d does not exist", id))
	}
	return s, err
}

// requireCourse loads a referenced course with its trainer attached
func (r *relations) requireCourse(ctx context.Context, id int64) (*models.Course, error) {
	c, err := r.courses.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("course %d does not exist", id))
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachTrainer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// requireTrainer loads a referenced trainer; a missing one is a validation error
func (r *relations) requireTrainer(ctx context.Context, id int64) (*models.Trainer, error) {
	t, err := r.trainers.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("trainer %d does not exist", id))
	}
	return t, err
}

// attachTrainer fills c.Formateur from c.TrainerID. A trainer deleted
// meanwhile leaves the course unassigned.
func (r *relations) attachTrainer(ctx context.Context, c *models.Course) error {
	c.Formateur = nil
	if c.TrainerID == nil {
		return nil
	}
	t, err := r.trainers.GetByID(ctx, *c.TrainerID)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error retrieving trainer: %w", err)
	}
	c.Formateur = t
	return nil
}
