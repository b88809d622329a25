package equipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

type Service struct {
	repo repository.EquipmentRepository
}

func NewService(repo repository.EquipmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, equipment *model.Equipment) error {
	if equipment.AssetTag == "" {
		return fmt.Errorf("asset tag is required")
	}
	if equipment.Name == "" {
		return fmt.Errorf("name is required")
	}

	if err := s.repo.Create(ctx, equipment); err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	equipment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return equipment, nil
}

func (s *Service) List(ctx context.Context, filters *model.EquipmentFilters) ([]*model.Equipment, error) {
	equipment, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

func (s *Service) SetOperational(ctx context.Context, id uuid.UUID, operational bool) error {
	if err := s.repo.SetOperational(ctx, id, operational); err != nil {
		return fmt.Errorf("failed to update equipment status: %w", err)
	}
	return nil
}
