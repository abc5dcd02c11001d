package fleet

import (
	"context"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	ListActive(ctx context.Context) ([]*models.Vehicle, error)
	ListAll(ctx context.Context) ([]*models.Vehicle, error)
	Update(ctx context.Context, v *models.Vehicle) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Service manages the vehicle catalog.
type Service struct {
	repo Repository
	l    logger.Logger
}

func New(repo Repository, l logger.Logger) *Service {
	return &Service{repo: repo, l: l}
}

func (s *Service) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	return s.repo.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	return s.repo.Get(ctx, id)
}

// ListActive is the public catalog.
func (s *Service) ListActive(ctx context.Context) ([]*models.Vehicle, error) {
	return s.repo.ListActive(ctx)
}

// ListAll includes deactivated vehicles, for the admin console.
func (s *Service) ListAll(ctx context.Context) ([]*models.Vehicle, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Deactivate hides a vehicle from the catalog without deleting it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
