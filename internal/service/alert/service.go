package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

type Service struct {
	repo repository.AlertRepository
}

func NewService(repo repository.AlertRepository) *Service {
	return &Service{repo: repo}
}

// ListForUser returns all alerts overlaid with the caller's read state.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, filters *model.AlertFilters) ([]*model.UserAlert, error) {
	alerts, err := s.repo.ListForUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (s *Service) CountUnseen(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnseen(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen alerts: %w", err)
	}
	return count, nil
}

func (s *Service) MarkSeen(ctx context.Context, alertID string, userID uuid.UUID) error {
	if _, err := s.repo.Get(ctx, alertID); err != nil {
		return fmt.Errorf("failed to get alert: %w", err)
	}

	if err := s.repo.MarkSeen(ctx, alertID, userID); err != nil {
		return fmt.Errorf("failed to mark alert seen: %w", err)
	}
	return nil
}

func (s *Service) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllSeen(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark all alerts seen: %w", err)
	}
	return nil
}
