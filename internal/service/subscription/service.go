package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

type Service struct {
	repo repository.SubscriptionRepository
}

func NewService(repo repository.SubscriptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateSubscriptionRequest) (*model.NotificationSubscription, error) {
	sub := &model.NotificationSubscription{
		Name:              req.Name,
		Email:             req.Email,
		Active:            true,
		LeadTimeDays:      req.LeadTimeDays,
		NotifyContracts:   req.NotifyContracts,
		NotifyMaintenance: req.NotifyMaintenance,
		NotifyInsurance:   req.NotifyInsurance,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.NotificationSubscription, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSubscriptionRequest) (*model.NotificationSubscription, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Email != nil {
		sub.Email = *req.Email
	}
	if req.Active != nil {
		sub.Active = *req.Active
	}
	if req.LeadTimeDays != nil {
		sub.LeadTimeDays = *req.LeadTimeDays
	}
	if req.NotifyContracts != nil {
		sub.NotifyContracts = *req.NotifyContracts
	}
	if req.NotifyMaintenance != nil {
		sub.NotifyMaintenance = *req.NotifyMaintenance
	}
	if req.NotifyInsurance != nil {
		sub.NotifyInsurance = *req.NotifyInsurance
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.NotificationSubscription, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
