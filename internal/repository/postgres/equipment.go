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

type equipmentRepository struct {
	db *sqlx.DB
}

func NewEquipmentRepository(db *sqlx.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *model.Equipment) error {
	query := `
		INSERT INTO equipment (
			id, asset_tag, serial_number, name, manufacturer, model,
			sector, operational, acquired_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	equipment.ID = uuid.New()
	equipment.CreatedAt = time.Now().UTC()
	equipment.UpdatedAt = equipment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		equipment.ID,
		equipment.AssetTag,
		equipment.SerialNumber,
		equipment.Name,
		equipment.Manufacturer,
		equipment.Model,
		equipment.Sector,
		equipment.Operational,
		equipment.AcquiredAt,
		equipment.CreatedAt,
		equipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

func (r *equipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	query := `
		SELECT id, asset_tag, serial_number, name, manufacturer, model,
			   sector, operational, acquired_at, created_at, updated_at
		FROM equipment
		WHERE id = $1
	`
	var equipment model.Equipment
	err := r.db.GetContext(ctx, &equipment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("equipment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return &equipment, nil
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *model.Equipment) error {
	query := `
		UPDATE equipment
		SET asset_tag = $1, serial_number = $2, name = $3,
			manufacturer = $4, model = $5, sector = $6,
			operational = $7, updated_at = $8
		WHERE id = $9
	`
	equipment.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		equipment.AssetTag,
		equipment.SerialNumber,
		equipment.Name,
		equipment.Manufacturer,
		equipment.Model,
		equipment.Sector,
		equipment.Operational,
		equipment.UpdatedAt,
		equipment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("equipment not found")
	}

	return nil
}

func (r *equipmentRepository) List(ctx context.Context, filters *model.EquipmentFilters) ([]*model.Equipment, error) {
	query := `
		SELECT id, asset_tag, serial_number, name, manufacturer, model,
			   sector, operational, acquired_at, created_at, updated_at
		FROM equipment
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.Sector != "" {
			query += fmt.Sprintf(" AND sector = $%d", argCount)
			args = append(args, filters.Sector)
			argCount++
		}
		if filters.Operational != nil {
			query += fmt.Sprintf(" AND operational = $%d", argCount)
			args = append(args, *filters.Operational)
			argCount++
		}
		if filters.SearchTerm != "" {
			query += fmt.Sprintf(" AND (name ILIKE $%d OR asset_tag ILIKE $%d)", argCount, argCount)
			args = append(args, "%"+filters.SearchTerm+"%")
			argCount++
		}
	}

	query += " ORDER BY name ASC"

	var equipment []*model.Equipment
	if err := r.db.SelectContext(ctx, &equipment, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

func (r *equipmentRepository) SetOperational(ctx context.Context, id uuid.UUID, operational bool) error {
	query := `
		UPDATE equipment
		SET operational = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, operational, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set equipment operational flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("equipment not found")
	}

	return nil
}
