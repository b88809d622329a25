package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
)

// All repository interfaces in one file
type (
	EquipmentRepository interface {
		Create(ctx context.Context, equipment *model.Equipment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
		Update(ctx context.Context, equipment *model.Equipment) error
		List(ctx context.Context, filters *model.EquipmentFilters) ([]*model.Equipment, error)
		SetOperational(ctx context.Context, id uuid.UUID, operational bool) error
	}

	MaintenanceOrderRepository interface {
		Create(ctx context.Context, order *model.MaintenanceOrder) error
		Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceOrder, error)
		Update(ctx context.Context, order *model.MaintenanceOrder) error
		List(ctx context.Context, filters *model.MaintenanceOrderFilters) ([]*model.MaintenanceOrder, error)
		// StartDue moves every scheduled order whose window has opened to
		// in_progress. Returns rows affected.
		StartDue(ctx context.Context, now time.Time) (int64, error)
		// FinishDue moves every in_progress order whose window has closed to
		// awaiting_confirmation and returns the transitioned orders.
		FinishDue(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error)
		// ListUpcoming returns scheduled orders with a future start and
		// in_progress orders with a future end.
		ListUpcoming(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error)
	}

	AlertRepository interface {
		// Upsert inserts the alert or refreshes title, subtitle, priority,
		// link and triggered_at of the existing row. Atomic per id.
		Upsert(ctx context.Context, alert *model.Alert) error
		Exists(ctx context.Context, id string) (bool, error)
		Get(ctx context.Context, id string) (*model.Alert, error)
		ListForUser(ctx context.Context, userID uuid.UUID, filters *model.AlertFilters) ([]*model.UserAlert, error)
		CountUnseen(ctx context.Context, userID uuid.UUID) (int, error)
		MarkSeen(ctx context.Context, alertID string, userID uuid.UUID) error
		MarkAllSeen(ctx context.Context, userID uuid.UUID) error
	}

	ContractRepository interface {
		Create(ctx context.Context, contract *model.ServiceContract) error
		Get(ctx context.Context, id uuid.UUID) (*model.ServiceContract, error)
		Update(ctx context.Context, contract *model.ServiceContract) error
		List(ctx context.Context) ([]*model.ServiceContract, error)
		ListActive(ctx context.Context) ([]*model.ServiceContract, error)
	}

	InsuranceRepository interface {
		Create(ctx context.Context, policy *model.InsurancePolicy) error
		Get(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error)
		Update(ctx context.Context, policy *model.InsurancePolicy) error
		List(ctx context.Context) ([]*model.InsurancePolicy, error)
		ListActive(ctx context.Context) ([]*model.InsurancePolicy, error)
	}

	SubscriptionRepository interface {
		Create(ctx context.Context, sub *model.NotificationSubscription) error
		Get(ctx context.Context, id uuid.UUID) (*model.NotificationSubscription, error)
		Update(ctx context.Context, sub *model.NotificationSubscription) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.NotificationSubscription, error)
		ListActiveForCategory(ctx context.Context, category model.AlertCategory) ([]*model.NotificationSubscription, error)
	}

	SentNotificationRepository interface {
		Exists(ctx context.Context, category model.AlertCategory, entityID, subscriptionID uuid.UUID) (bool, error)
		Create(ctx context.Context, record *model.SentNotificationRecord) error
	}

	UserRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Create(ctx context.Context, user *model.User) error
	}
)
