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

// StudentService defines the interface for student-related operations
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, form dto.StudentForm) (*models.Student, error)
	Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

func (s *studentServiceImpl) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByID(ctx, id)
}

// Create stamps the enrolment date
func (s *studentServiceImpl) Create(ctx context.Context, form dto.StudentForm) (*models.Student, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	enrolled := now()
	student := &models.Student{DateInscription: &enrolled}
	applyStudentForm(student, form)

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) Update(ctx context.Context, id int64, form dto.StudentForm) (*models.Student, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyStudentForm(student, form)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.Delete(ctx, id)
}

func applyStudentForm(s *models.Student, f dto.StudentForm) {
	s.Matricule = f.Matricule
	s.Nom = f.Nom
	s.Prenom = f.Prenom
	s.Email = f.Email
}
