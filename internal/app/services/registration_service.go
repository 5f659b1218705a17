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

// RegistrationService defines the interface for registration-related
// operations. A student holds at most one ACTIVE registration per course.
type RegistrationService interface {
	List(ctx context.Context) ([]models.Registration, error)
	Get(ctx context.Context, id int64) (*models.Registration, error)
	Create(ctx context.Context, form dto.RegistrationForm) (*models.Registration, error)
	Update(ctx context.Context, id int64, patch dto.RegistrationPatch) (*models.Registration, error)
	Delete(ctx context.Context, id int64) error
}

type registrationServiceImpl struct {
	registrationRepo repositories.RegistrationRepository
	rel              *relations
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(registrationRepo repositories.RegistrationRepository, rel *relations) RegistrationService {
	return &registrationServiceImpl{registrationRepo: registrationRepo, rel: rel}
}

func (s *registrationServiceImpl) List(ctx context.Context) ([]models.Registration, error) {
	l, err := s.rel.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}

	regs, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving registrations: %w", err)
	}
	for i := range regs {
		regs[i].Etudiant = l.student(regs[i].StudentID)
		regs[i].Cours = l.course(regs[i].CourseID)
	}
	return regs, nil
}

func (s *registrationServiceImpl) Get(ctx context.Context, id int64) (*models.Registration, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid registration ID", apperrors.ErrValidationFailed)
	}
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Create stamps the registration date; the status defaults to ACTIVE
func (s *registrationServiceImpl) Create(ctx context.Context, form dto.RegistrationForm) (*models.Registration, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		StudentID:       form.EtudiantID,
		CourseID:        form.CoursID,
		Statut:          form.Statut,
		DateInscription: now(),
	}
	if reg.Statut == "" {
		reg.Statut = models.StatusActive
	}

	if err := s.check(ctx, reg); err != nil {
		return nil, err
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Update applies the fields present in patch
func (s *registrationServiceImpl) Update(ctx context.Context, id int64, patch dto.RegistrationPatch) (*models.Registration, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.EtudiantID != nil {
		reg.StudentID = *patch.EtudiantID
	}
	if patch.CoursID != nil {
		reg.CourseID = *patch.CoursID
	}
	if patch.Statut != nil {
		reg.Statut = *patch.Statut
	}

	if err := s.check(ctx, reg); err != nil {
		return nil, err
	}
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid registration ID", apperrors.ErrValidationFailed)
	}
	return s.registrationRepo.Delete(ctx, id)
}

// check resolves both ends of reg and enforces the active uniqueness
func (s *registrationServiceImpl) check(ctx context.Context, reg *models.Registration) error {
	if !reg.Statut.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown registration status %q", reg.Statut))
	}

	student, err := s.rel.requireStudent(ctx, reg.StudentID)
	if err != nil {
		return err
	}
	course, err := s.rel.requireCourse(ctx, reg.CourseID)
	if err != nil {
		return err
	}

	if reg.Statut == models.StatusActive {
		exists, err := s.registrationRepo.HasActive(ctx, reg.StudentID, reg.CourseID, reg.ID)
		if err != nil {
			return fmt.Errorf("error checking active registrations: %w", err)
		}
		if exists {
			return apperrors.NewActiveRegistrationError(reg.StudentID, reg.CourseID)
		}
	}

	reg.Etudiant = student
	reg.Cours = course
	return nil
}

func (s *registrationServiceImpl) hydrate(ctx context.Context, reg *models.Registration) error {
	l, err := s.rel.snapshot(ctx, true)
	if err != nil {
		return err
	}
	reg.Etudiant = l.student(reg.StudentID)
	reg.Cours = l.course(reg.CourseID)
	return nil
}
