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

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

// Upsert relies on the primary key conflict so that two concurrent sweeps
// evaluating the same condition cannot produce duplicate rows.
func (r *alertRepository) Upsert(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (
			id, title, subtitle, category, priority, link,
			triggered_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			priority = EXCLUDED.priority,
			link = EXCLUDED.link,
			triggered_at = EXCLUDED.triggered_at,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.Title,
		alert.Subtitle,
		alert.Category,
		alert.Priority,
		alert.Link,
		alert.TriggeredAt,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM alerts WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check alert existence: %w", err)
	}
	return exists, nil
}

func (r *alertRepository) Get(ctx context.Context, id string) (*model.Alert, error) {
	query := `
		SELECT id, title, subtitle, category, priority, link,
			   triggered_at, created_at, updated_at
		FROM alerts
		WHERE id = $1
	`
	var alert model.Alert
	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alert not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

func (r *alertRepository) ListForUser(ctx context.Context, userID uuid.UUID, filters *model.AlertFilters) ([]*model.UserAlert, error) {
	query := `
		SELECT a.id, a.title, a.subtitle, a.category, a.priority, a.link,
			   a.triggered_at, a.created_at, a.updated_at,
			   COALESCE(r.seen, false) AS seen, r.seen_at
		FROM alerts a
		LEFT JOIN alert_read_states r
			ON r.alert_id = a.id AND r.user_id = $1
		WHERE 1=1
	`
	args := []interface{}{userID}
	argCount := 2

	if filters != nil {
		if filters.Category != "" {
			query += fmt.Sprintf(" AND a.category = $%d", argCount)
			args = append(args, filters.Category)
			argCount++
		}
		if filters.Priority != "" {
			query += fmt.Sprintf(" AND a.priority = $%d", argCount)
			args = append(args, filters.Priority)
			argCount++
		}
		if filters.Unseen {
			query += " AND COALESCE(r.seen, false) = false"
		}
	}

	query += " ORDER BY a.triggered_at DESC"

	var alerts []*model.UserAlert
	err := r.db.SelectContext(ctx, &alerts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) CountUnseen(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM alerts a
		LEFT JOIN alert_read_states r
			ON r.alert_id = a.id AND r.user_id = $1
		WHERE COALESCE(r.seen, false) = false
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unseen alerts: %w", err)
	}
	return count, nil
}

func (r *alertRepository) MarkSeen(ctx context.Context, alertID string, userID uuid.UUID) error {
	query := `
		INSERT INTO alert_read_states (alert_id, user_id, seen, seen_at)
		VALUES ($1, $2, true, $3)
		ON CONFLICT (alert_id, user_id) DO UPDATE
		SET seen = true, seen_at = EXCLUDED.seen_at
	`
	_, err := r.db.ExecContext(ctx, query, alertID, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark alert seen: %w", err)
	}
	return nil
}

func (r *alertRepository) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO alert_read_states (alert_id, user_id, seen, seen_at)
		SELECT a.id, $1, true, $2 FROM alerts a
		ON CONFLICT (alert_id, user_id) DO UPDATE
		SET seen = true, seen_at = EXCLUDED.seen_at
	`
	_, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark all alerts seen: %w", err)
	}
	return nil
}
