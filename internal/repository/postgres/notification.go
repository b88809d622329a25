package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.NotificationSubscription) error {
	query := `
		INSERT INTO notification_subscriptions (
			id, name, email, active, lead_time_days,
			notify_contracts, notify_maintenance, notify_insurance,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now().UTC()
	sub.UpdatedAt = sub.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.Name,
		sub.Email,
		sub.Active,
		sub.LeadTimeDays,
		sub.NotifyContracts,
		sub.NotifyMaintenance,
		sub.NotifyInsurance,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.NotificationSubscription, error) {
	query := `
		SELECT id, name, email, active, lead_time_days,
			   notify_contracts, notify_maintenance, notify_insurance,
			   created_at, updated_at
		FROM notification_subscriptions
		WHERE id = $1
	`
	var sub model.NotificationSubscription
	err := r.db.GetContext(ctx, &sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subscription not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *model.NotificationSubscription) error {
	query := `
		UPDATE notification_subscriptions
		SET name = $1, email = $2, active = $3, lead_time_days = $4,
			notify_contracts = $5, notify_maintenance = $6,
			notify_insurance = $7, updated_at = $8
		WHERE id = $9
	`
	sub.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		sub.Name,
		sub.Email,
		sub.Active,
		sub.LeadTimeDays,
		sub.NotifyContracts,
		sub.NotifyMaintenance,
		sub.NotifyInsurance,
		sub.UpdatedAt,
		sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("subscription not found")
	}

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notification_subscriptions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("subscription not found")
	}

	return nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*model.NotificationSubscription, error) {
	query := `
		SELECT id, name, email, active, lead_time_days,
			   notify_contracts, notify_maintenance, notify_insurance,
			   created_at, updated_at
		FROM notification_subscriptions
		ORDER BY name ASC
	`
	var subs []*model.NotificationSubscription
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (r *subscriptionRepository) ListActiveForCategory(ctx context.Context, category model.AlertCategory) ([]*model.NotificationSubscription, error) {
	query := `
		SELECT id, name, email, active, lead_time_days,
			   notify_contracts, notify_maintenance, notify_insurance,
			   created_at, updated_at
		FROM notification_subscriptions
		WHERE active = true
	`
	switch category {
	case model.AlertCategoryContract:
		query += " AND notify_contracts = true"
	case model.AlertCategoryMaintenance:
		query += " AND notify_maintenance = true"
	case model.AlertCategoryInsurance:
		query += " AND notify_insurance = true"
	default:
		return nil, fmt.Errorf("unknown alert category: %s", category)
	}

	var subs []*model.NotificationSubscription
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	return subs, nil
}

type sentNotificationRepository struct {
	db *sqlx.DB
}

func NewSentNotificationRepository(db *sqlx.DB) repository.SentNotificationRepository {
	return &sentNotificationRepository{db: db}
}

func (r *sentNotificationRepository) Exists(ctx context.Context, category model.AlertCategory, entityID, subscriptionID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sent_notifications
			WHERE category = $1 AND entity_id = $2 AND subscription_id = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, category, entityID, subscriptionID); err != nil {
		return false, fmt.Errorf("failed to check sent notification: %w", err)
	}
	return exists, nil
}

// Create inserts the send record. The table carries a unique constraint on
// (category, entity_id, subscription_id); a conflict means another sweep
// already recorded the send, which callers may treat as success.
func (r *sentNotificationRepository) Create(ctx context.Context, record *model.SentNotificationRecord) error {
	query := `
		INSERT INTO sent_notifications (
			id, category, entity_id, subscription_id, sent_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, entity_id, subscription_id) DO NOTHING
	`
	record.ID = uuid.New()
	if record.SentAt.IsZero() {
		record.SentAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Category,
		record.EntityID,
		record.SubscriptionID,
		record.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sent notification record: %w", err)
	}
	return nil
}
