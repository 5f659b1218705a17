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

// TrainerService defines the interface for trainer-related operations
type TrainerService interface {
	List(ctx context.Context) ([]models.Trainer, error)
	Get(ctx context.Context, id int64) (*models.Trainer, error)
	Create(ctx context.Context, form dto.TrainerForm) (*models.Trainer, error)
	Update(ctx context.Context, id int64, form dto.TrainerForm) (*models.Trainer, error)
	Delete(ctx context.Context, id int64) error
}

type trainerServiceImpl struct {
	trainerRepo repositories.TrainerRepository
}

// NewTrainerService creates a new trainer service instance
func NewTrainerService(trainerRepo repositories.TrainerRepository) TrainerService {
	return &trainerServiceImpl{trainerRepo: trainerRepo}
}

func (s *trainerServiceImpl) List(ctx context.Context) ([]models.Trainer, error) {
	trainers, err := s.trainerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving trainers: %w", err)
	}
	return trainers, nil
}

func (s *trainerServiceImpl) Get(ctx context.Context, id int64) (*models.Trainer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid trainer ID", apperrors.ErrValidationFailed)
	}
	return s.trainerRepo.GetByID(ctx, id)
}

func (s *trainerServiceImpl) Create(ctx context.Context, form dto.TrainerForm) (*models.Trainer, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	trainer := &models.Trainer{}
	applyTrainerForm(trainer, form)
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

func (s *trainerServiceImpl) Update(ctx context.Context, id int64, form dto.TrainerForm) (*models.Trainer, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	trainer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTrainerForm(trainer, form)

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// Delete leaves the trainer's courses unassigned
func (s *trainerServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid trainer ID", apperrors.ErrValidationFailed)
	}
	return s.trainerRepo.Delete(ctx, id)
}

func applyTrainerForm(t *models.Trainer, f dto.TrainerForm) {
	t.IDFormateur = f.IDFormateur
	t.Nom = f.Nom
	t.Prenom = f.Prenom
	t.Email = f.Email
	t.Specialite = f.Specialite
}
