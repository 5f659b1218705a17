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

// GradeService defines the interface for grade-related operations
type GradeService interface {
	List(ctx context.Context) ([]models.Grade, error)
	Get(ctx context.Context, id int64) (*models.Grade, error)
	Create(ctx context.Context, form dto.GradeForm) (*models.Grade, error)
	Update(ctx context.Context, id int64, form dto.GradeForm) (*models.Grade, error)
	Delete(ctx context.Context, id int64) error
}

type gradeServiceImpl struct {
	gradeRepo repositories.GradeRepository
	rel       *relations
}

// NewGradeService creates a new grade service instance
func NewGradeService(gradeRepo repositories.GradeRepository, rel *relations) GradeService {
	return &gradeServiceImpl{gradeRepo: gradeRepo, rel: rel}
}

func (s *gradeServiceImpl) List(ctx context.Context) ([]models.Grade, error) {
	l, err := s.rel.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}

	grades, err := s.gradeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades: %w", err)
	}
	for i := range grades {
		grades[i].Etudiant = l.student(grades[i].StudentID)
		grades[i].Cours = l.course(grades[i].CourseID)
	}
	return grades, nil
}

func (s *gradeServiceImpl) Get(ctx context.Context, id int64) (*models.Grade, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid grade ID", apperrors.ErrValidationFailed)
	}
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	l, err := s.rel.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	grade.Etudiant = l.student(grade.StudentID)
	grade.Cours = l.course(grade.CourseID)
	return grade, nil
}

// Create stamps the attribution date
func (s *gradeServiceImpl) Create(ctx context.Context, form dto.GradeForm) (*models.Grade, error) {
	assigned := now()
	grade := &models.Grade{DateAttribution: &assigned}
	if err := s.apply(ctx, grade, form); err != nil {
		return nil, err
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *gradeServiceImpl) Update(ctx context.Context, id int64, form dto.GradeForm) (*models.Grade, error) {
	grade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, grade, form); err != nil {
		return nil, err
	}

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

func (s *gradeServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid grade ID", apperrors.ErrValidationFailed)
	}
	return s.gradeRepo.Delete(ctx, id)
}

func (s *gradeServiceImpl) apply(ctx context.Context, g *models.Grade, f dto.GradeForm) error {
	if err := validation.Struct(f); err != nil {
		return err
	}
	if !validation.GradeInRange(f.Valeur) {
		return apperrors.NewValidationError(fmt.Sprintf("grade must be between %.0f and %.0f", models.MinGrade, models.MaxGrade))
	}

	student, err := s.rel.requireStudent(ctx, f.EtudiantID)
	if err != nil {
		return err
	}
	course, err := s.rel.requireCourse(ctx, f.CoursID)
	if err != nil {
		return err
	}

	g.StudentID = student.ID
	g.CourseID = course.ID
	g.Etudiant = student
	g.Cours = course
	g.Valeur = f.Valeur
	return nil
}
