package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

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

type mockAlertRepo struct{ mock.Mock }

func (m *mockAlertRepo) Upsert(ctx context.Context, alert *model.Alert) error {
	return m.Called(ctx, alert).Error(0)
}

func (m *mockAlertRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAlertRepo) Get(ctx context.Context, id string) (*model.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Alert), args.Error(1)
}

func (m *mockAlertRepo) ListForUser(ctx context.Context, userID uuid.UUID, filters *model.AlertFilters) ([]*model.UserAlert, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserAlert), args.Error(1)
}

func (m *mockAlertRepo) CountUnseen(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockAlertRepo) MarkSeen(ctx context.Context, alertID string, userID uuid.UUID) error {
	return m.Called(ctx, alertID, userID).Error(0)
}

func (m *mockAlertRepo) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockContractRepo struct{ mock.Mock }

func (m *mockContractRepo) Create(ctx context.Context, contract *model.ServiceContract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *mockContractRepo) Get(ctx context.Context, id uuid.UUID) (*model.ServiceContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceContract), args.Error(1)
}

func (m *mockContractRepo) Update(ctx context.Context, contract *model.ServiceContract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *mockContractRepo) List(ctx context.Context) ([]*model.ServiceContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ServiceContract), args.Error(1)
}

func (m *mockContractRepo) ListActive(ctx context.Context) ([]*model.ServiceContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ServiceContract), args.Error(1)
}

type mockInsuranceRepo struct{ mock.Mock }

func (m *mockInsuranceRepo) Create(ctx context.Context, policy *model.InsurancePolicy) error {
	return m.Called(ctx, policy).Error(0)
}

func (m *mockInsuranceRepo) Get(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsurancePolicy), args.Error(1)
}

func (m *mockInsuranceRepo) Update(ctx context.Context, policy *model.InsurancePolicy) error {
	return m.Called(ctx, policy).Error(0)
}

func (m *mockInsuranceRepo) List(ctx context.Context) ([]*model.InsurancePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InsurancePolicy), args.Error(1)
}

func (m *mockInsuranceRepo) ListActive(ctx context.Context) ([]*model.InsurancePolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InsurancePolicy), args.Error(1)
}

type mockSubscriptionRepo struct{ mock.Mock }

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *model.NotificationSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepo) Get(ctx context.Context, id uuid.UUID) (*model.NotificationSubscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationSubscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, sub *model.NotificationSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSubscriptionRepo) List(ctx context.Context) ([]*model.NotificationSubscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NotificationSubscription), args.Error(1)
}

func (m *mockSubscriptionRepo) ListActiveForCategory(ctx context.Context, category model.AlertCategory) ([]*model.NotificationSubscription, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.NotificationSubscription), args.Error(1)
}

type mockSentRepo struct{ mock.Mock }

func (m *mockSentRepo) Exists(ctx context.Context, category model.AlertCategory, entityID, subscriptionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, category, entityID, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSentRepo) Create(ctx context.Context, record *model.SentNotificationRecord) error {
	return m.Called(ctx, record).Error(0)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) SendNotification(ctx context.Context, msg *model.NotificationMessage) error {
	return m.Called(ctx, msg).Error(0)
}
