package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

const (
	MinServiceWindow = 15 * time.Minute
	MaxServiceWindow = 30 * 24 * time.Hour
)

type Service struct {
	repo      repository.MaintenanceOrderRepository
	equipment repository.EquipmentRepository
}

func NewService(repo repository.MaintenanceOrderRepository, equipment repository.EquipmentRepository) *Service {
	return &Service{
		repo:      repo,
		equipment: equipment,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req *model.CreateMaintenanceOrderRequest) (*model.MaintenanceOrder, error) {
	if err := s.validateSchedule(req.ScheduledStart, req.ScheduledEnd); err != nil {
		return nil, fmt.Errorf("invalid maintenance order: %w", err)
	}

	if _, err := s.equipment.Get(ctx, req.EquipmentID); err != nil {
		return nil, fmt.Errorf("invalid equipment: %w", err)
	}

	order := &model.MaintenanceOrder{
		OrderNumber:    generateOrderNumber(req.ScheduledStart),
		EquipmentID:    req.EquipmentID,
		Type:           model.MaintenanceType(req.Type),
		Status:         model.MaintenanceStatusScheduled,
		ScheduledStart: req.ScheduledStart.UTC(),
		ScheduledEnd:   req.ScheduledEnd.UTC(),
		Technician:     req.Technician,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create maintenance order: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*model.MaintenanceOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance order: %w", err)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, filters *model.MaintenanceOrderFilters) ([]*model.MaintenanceOrder, error) {
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance orders: %w", err)
	}
	return orders, nil
}

// ConfirmOrder closes an order that finished its service window. When the
// equipment came back non-operational the asset is flagged so the fleet view
// reflects it immediately.
func (s *Service) ConfirmOrder(ctx context.Context, id uuid.UUID, req *model.ConfirmMaintenanceRequest) (*model.MaintenanceOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance order: %w", err)
	}

	if order.Status != model.MaintenanceStatusAwaitingConfirmation {
		return nil, fmt.Errorf("order %s is not awaiting confirmation", order.OrderNumber)
	}

	now := time.Now().UTC()
	order.Status = model.MaintenanceStatusConcluded
	order.ConfirmedAt = &now
	if req.Notes != "" {
		order.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to conclude maintenance order: %w", err)
	}

	if err := s.equipment.SetOperational(ctx, order.EquipmentID, req.EquipmentOperational); err != nil {
		return nil, fmt.Errorf("failed to update equipment status: %w", err)
	}

	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, id uuid.UUID, reason string) (*model.MaintenanceOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance order: %w", err)
	}

	switch order.Status {
	case model.MaintenanceStatusCancelled:
		return nil, fmt.Errorf("order %s is already cancelled", order.OrderNumber)
	case model.MaintenanceStatusConcluded:
		return nil, fmt.Errorf("cannot cancel a concluded order")
	case model.MaintenanceStatusAwaitingConfirmation:
		return nil, fmt.Errorf("order %s awaits confirmation and can no longer be cancelled", order.OrderNumber)
	}

	order.Status = model.MaintenanceStatusCancelled
	order.CancelReason = &reason

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to cancel maintenance order: %w", err)
	}
	return order, nil
}

func (s *Service) validateSchedule(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("scheduled end must be after scheduled start")
	}

	window := end.Sub(start)
	if window < MinServiceWindow || window > MaxServiceWindow {
		return fmt.Errorf("service window must be between %v and %v", MinServiceWindow, MaxServiceWindow)
	}

	return nil
}

func generateOrderNumber(start time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("OS-%d-%s", start.UTC().Year(), suffix)
}
