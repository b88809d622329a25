package maintenance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simecdev/simec-api/internal/model"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *model.MaintenanceOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceOrder), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *model.MaintenanceOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) List(ctx context.Context, filters *model.MaintenanceOrderFilters) ([]*model.MaintenanceOrder, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MaintenanceOrder), args.Error(1)
}

func (m *mockOrderRepo) StartDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) FinishDue(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MaintenanceOrder), args.Error(1)
}

func (m *mockOrderRepo) ListUpcoming(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MaintenanceOrder), args.Error(1)
}

type mockEquipmentRepo struct{ mock.Mock }

func (m *mockEquipmentRepo) Create(ctx context.Context, equipment *model.Equipment) error {
	return m.Called(ctx, equipment).Error(0)
}

func (m *mockEquipmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) Update(ctx context.Context, equipment *model.Equipment) error {
	return m.Called(ctx, equipment).Error(0)
}

func (m *mockEquipmentRepo) List(ctx context.Context, filters *model.EquipmentFilters) ([]*model.Equipment, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Equipment), args.Error(1)
}

func (m *mockEquipmentRepo) SetOperational(ctx context.Context, id uuid.UUID, operational bool) error {
	return m.Called(ctx, id, operational).Error(0)
}

func TestCreateOrder(t *testing.T) {
	equipmentID := uuid.New()
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("creates scheduled order", func(t *testing.T) {
		orders := new(mockOrderRepo)
		equipment := new(mockEquipmentRepo)
		svc := NewService(orders, equipment)

		equipment.On("Get", mock.Anything, equipmentID).Return(&model.Equipment{}, nil)
		orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.MaintenanceOrder) bool {
			return o.Status == model.MaintenanceStatusScheduled &&
				o.EquipmentID == equipmentID &&
				strings.HasPrefix(o.OrderNumber, "OS-2026-")
		})).Return(nil)

		order, err := svc.CreateOrder(context.Background(), &model.CreateMaintenanceOrderRequest{
			EquipmentID:    equipmentID,
			Type:           "preventive",
			ScheduledStart: start,
			ScheduledEnd:   start.Add(2 * time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, model.MaintenanceStatusScheduled, order.Status)
		orders.AssertExpectations(t)
		equipment.AssertExpectations(t)
	})

	t.Run("rejects window shorter than minimum", func(t *testing.T) {
		svc := NewService(new(mockOrderRepo), new(mockEquipmentRepo))

		_, err := svc.CreateOrder(context.Background(), &model.CreateMaintenanceOrderRequest{
			EquipmentID:    equipmentID,
			Type:           "corrective",
			ScheduledStart: start,
			ScheduledEnd:   start.Add(5 * time.Minute),
		})

		assert.Error(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc := NewService(new(mockOrderRepo), new(mockEquipmentRepo))

		_, err := svc.CreateOrder(context.Background(), &model.CreateMaintenanceOrderRequest{
			EquipmentID:    equipmentID,
			Type:           "corrective",
			ScheduledStart: start,
			ScheduledEnd:   start.Add(-time.Hour),
		})

		assert.Error(t, err)
	})

	t.Run("rejects unknown equipment", func(t *testing.T) {
		orders := new(mockOrderRepo)
		equipment := new(mockEquipmentRepo)
		svc := NewService(orders, equipment)

		equipment.On("Get", mock.Anything, equipmentID).Return(nil, assert.AnError)

		_, err := svc.CreateOrder(context.Background(), &model.CreateMaintenanceOrderRequest{
			EquipmentID:    equipmentID,
			Type:           "preventive",
			ScheduledStart: start,
			ScheduledEnd:   start.Add(2 * time.Hour),
		})

		assert.Error(t, err)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestConfirmOrder(t *testing.T) {
	orderID := uuid.New()
	equipmentID := uuid.New()

	awaiting := func() *model.MaintenanceOrder {
		return &model.MaintenanceOrder{
			Base:        model.Base{ID: orderID},
			OrderNumber: "OS-2026-AB12CD34",
			EquipmentID: equipmentID,
			Status:      model.MaintenanceStatusAwaitingConfirmation,
		}
	}

	t.Run("concludes awaiting order and restores equipment", func(t *testing.T) {
		orders := new(mockOrderRepo)
		equipment := new(mockEquipmentRepo)
		svc := NewService(orders, equipment)

		orders.On("Get", mock.Anything, orderID).Return(awaiting(), nil)
		orders.On("Update", mock.Anything, mock.MatchedBy(func(o *model.MaintenanceOrder) bool {
			return o.Status == model.MaintenanceStatusConcluded && o.ConfirmedAt != nil
		})).Return(nil)
		equipment.On("SetOperational", mock.Anything, equipmentID, true).Return(nil)

		order, err := svc.ConfirmOrder(context.Background(), orderID, &model.ConfirmMaintenanceRequest{
			EquipmentOperational: true,
		})

		require.NoError(t, err)
		assert.Equal(t, model.MaintenanceStatusConcluded, order.Status)
		orders.AssertExpectations(t)
		equipment.AssertExpectations(t)
	})

	t.Run("flags equipment when it comes back non-operational", func(t *testing.T) {
		orders := new(mockOrderRepo)
		equipment := new(mockEquipmentRepo)
		svc := NewService(orders, equipment)

		orders.On("Get", mock.Anything, orderID).Return(awaiting(), nil)
		orders.On("Update", mock.Anything, mock.Anything).Return(nil)
		equipment.On("SetOperational", mock.Anything, equipmentID, false).Return(nil)

		_, err := svc.ConfirmOrder(context.Background(), orderID, &model.ConfirmMaintenanceRequest{
			EquipmentOperational: false,
		})

		require.NoError(t, err)
		equipment.AssertExpectations(t)
	})

	t.Run("rejects order not awaiting confirmation", func(t *testing.T) {
		orders := new(mockOrderRepo)
		equipment := new(mockEquipmentRepo)
		svc := NewService(orders, equipment)

		scheduled := awaiting()
		scheduled.Status = model.MaintenanceStatusScheduled
		orders.On("Get", mock.Anything, orderID).Return(scheduled, nil)

		_, err := svc.ConfirmOrder(context.Background(), orderID, &model.ConfirmMaintenanceRequest{})

		assert.Error(t, err)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	orderID := uuid.New()

	orderWithStatus := func(status model.MaintenanceStatus) *model.MaintenanceOrder {
		return &model.MaintenanceOrder{
			Base:        model.Base{ID: orderID},
			OrderNumber: "OS-2026-AB12CD34",
			Status:      status,
		}
	}

	t.Run("cancels scheduled order with reason", func(t *testing.T) {
		orders := new(mockOrderRepo)
		svc := NewService(orders, new(mockEquipmentRepo))

		orders.On("Get", mock.Anything, orderID).Return(orderWithStatus(model.MaintenanceStatusScheduled), nil)
		orders.On("Update", mock.Anything, mock.MatchedBy(func(o *model.MaintenanceOrder) bool {
			return o.Status == model.MaintenanceStatusCancelled &&
				o.CancelReason != nil && *o.CancelReason == "equipamento substituído"
		})).Return(nil)

		order, err := svc.CancelOrder(context.Background(), orderID, "equipamento substituído")

		require.NoError(t, err)
		assert.Equal(t, model.MaintenanceStatusCancelled, order.Status)
		orders.AssertExpectations(t)
	})

	t.Run("cancels in-progress order", func(t *testing.T) {
		orders := new(mockOrderRepo)
		svc := NewService(orders, new(mockEquipmentRepo))

		orders.On("Get", mock.Anything, orderID).Return(orderWithStatus(model.MaintenanceStatusInProgress), nil)
		orders.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CancelOrder(context.Background(), orderID, "técnico indisponível")

		require.NoError(t, err)
	})

	for _, status := range []model.MaintenanceStatus{
		model.MaintenanceStatusCancelled,
		model.MaintenanceStatusConcluded,
		model.MaintenanceStatusAwaitingConfirmation,
	} {
		t.Run("rejects cancel for "+string(status), func(t *testing.T) {
			orders := new(mockOrderRepo)
			svc := NewService(orders, new(mockEquipmentRepo))

			orders.On("Get", mock.Anything, orderID).Return(orderWithStatus(status), nil)

			_, err := svc.CancelOrder(context.Background(), orderID, "qualquer motivo")

			assert.Error(t, err)
			orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}
