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

type maintenanceOrderRepository struct {
	db *sqlx.DB
}

func NewMaintenanceOrderRepository(db *sqlx.DB) repository.MaintenanceOrderRepository {
	return &maintenanceOrderRepository{db: db}
}

func (r *maintenanceOrderRepository) Create(ctx context.Context, order *model.MaintenanceOrder) error {
	query := `
		INSERT INTO maintenance_orders (
			id, order_number, equipment_id, type, status,
			scheduled_start, scheduled_end, technician, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	order.ID = uuid.New()
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.EquipmentID,
		order.Type,
		order.Status,
		order.ScheduledStart,
		order.ScheduledEnd,
		order.Technician,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create maintenance order: %w", err)
	}
	return nil
}

func (r *maintenanceOrderRepository) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceOrder, error) {
	query := `
		SELECT id, order_number, equipment_id, type, status,
			   scheduled_start, scheduled_end, technician, notes,
			   cancel_reason, confirmed_at, created_at, updated_at
		FROM maintenance_orders
		WHERE id = $1
	`
	var order model.MaintenanceOrder
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("maintenance order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance order: %w", err)
	}
	return &order, nil
}

func (r *maintenanceOrderRepository) Update(ctx context.Context, order *model.MaintenanceOrder) error {
	query := `
		UPDATE maintenance_orders
		SET status = $1, scheduled_start = $2, scheduled_end = $3,
			technician = $4, notes = $5, cancel_reason = $6,
			confirmed_at = $7, updated_at = $8
		WHERE id = $9
	`
	order.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		order.Status,
		order.ScheduledStart,
		order.ScheduledEnd,
		order.Technician,
		order.Notes,
		order.CancelReason,
		order.ConfirmedAt,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("maintenance order not found")
	}

	return nil
}

func (r *maintenanceOrderRepository) List(ctx context.Context, filters *model.MaintenanceOrderFilters) ([]*model.MaintenanceOrder, error) {
	query := `
		SELECT id, order_number, equipment_id, type, status,
			   scheduled_start, scheduled_end, technician, notes,
			   cancel_reason, confirmed_at, created_at, updated_at
		FROM maintenance_orders
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.EquipmentID != uuid.Nil {
			query += fmt.Sprintf(" AND equipment_id = $%d", argCount)
			args = append(args, filters.EquipmentID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND scheduled_start >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND scheduled_end <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY scheduled_start ASC"

	var orders []*model.MaintenanceOrder
	err := r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance orders: %w", err)
	}
	return orders, nil
}

func (r *maintenanceOrderRepository) StartDue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE maintenance_orders
		SET status = $1, updated_at = $2
		WHERE status = $3 AND scheduled_start <= $2
	`
	result, err := r.db.ExecContext(ctx, query,
		model.MaintenanceStatusInProgress,
		now,
		model.MaintenanceStatusScheduled,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to start due maintenance orders: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *maintenanceOrderRepository) FinishDue(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error) {
	query := `
		UPDATE maintenance_orders
		SET status = $1, updated_at = $2
		WHERE status = $3 AND scheduled_end <= $2
		RETURNING id, order_number, equipment_id, type, status,
				  scheduled_start, scheduled_end, technician, notes,
				  cancel_reason, confirmed_at, created_at, updated_at
	`
	var orders []*model.MaintenanceOrder
	err := r.db.SelectContext(ctx, &orders, query,
		model.MaintenanceStatusAwaitingConfirmation,
		now,
		model.MaintenanceStatusInProgress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to finish due maintenance orders: %w", err)
	}
	return orders, nil
}

func (r *maintenanceOrderRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*model.MaintenanceOrder, error) {
	query := `
		SELECT id, order_number, equipment_id, type, status,
			   scheduled_start, scheduled_end, technician, notes,
			   cancel_reason, confirmed_at, created_at, updated_at
		FROM maintenance_orders
		WHERE (status = $1 AND scheduled_start > $3)
		   OR (status = $2 AND scheduled_end > $3)
		ORDER BY scheduled_start ASC
	`
	var orders []*model.MaintenanceOrder
	err := r.db.SelectContext(ctx, &orders, query,
		model.MaintenanceStatusScheduled,
		model.MaintenanceStatusInProgress,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming maintenance orders: %w", err)
	}
	return orders, nil
}
