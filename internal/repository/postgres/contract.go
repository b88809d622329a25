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

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *model.ServiceContract) error {
	query := `
		INSERT INTO service_contracts (
			id, contract_number, vendor, description, equipment_id,
			status, start_date, end_date, monthly_cost,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	contract.ID = uuid.New()
	contract.CreatedAt = time.Now().UTC()
	contract.UpdatedAt = contract.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		contract.ID,
		contract.ContractNumber,
		contract.Vendor,
		contract.Description,
		contract.EquipmentID,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyCost,
		contract.CreatedAt,
		contract.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id uuid.UUID) (*model.ServiceContract, error) {
	query := `
		SELECT id, contract_number, vendor, description, equipment_id,
			   status, start_date, end_date, monthly_cost,
			   created_at, updated_at
		FROM service_contracts
		WHERE id = $1
	`
	var contract model.ServiceContract
	err := r.db.GetContext(ctx, &contract, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contract not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return &contract, nil
}

func (r *contractRepository) Update(ctx context.Context, contract *model.ServiceContract) error {
	query := `
		UPDATE service_contracts
		SET contract_number = $1, vendor = $2, description = $3,
			status = $4, start_date = $5, end_date = $6,
			monthly_cost = $7, updated_at = $8
		WHERE id = $9
	`
	contract.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		contract.ContractNumber,
		contract.Vendor,
		contract.Description,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyCost,
		contract.UpdatedAt,
		contract.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("contract not found")
	}

	return nil
}

func (r *contractRepository) List(ctx context.Context) ([]*model.ServiceContract, error) {
	query := `
		SELECT id, contract_number, vendor, description, equipment_id,
			   status, start_date, end_date, monthly_cost,
			   created_at, updated_at
		FROM service_contracts
		ORDER BY end_date ASC
	`
	var contracts []*model.ServiceContract
	if err := r.db.SelectContext(ctx, &contracts, query); err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (r *contractRepository) ListActive(ctx context.Context) ([]*model.ServiceContract, error) {
	query := `
		SELECT id, contract_number, vendor, description, equipment_id,
			   status, start_date, end_date, monthly_cost,
			   created_at, updated_at
		FROM service_contracts
		WHERE status = $1
		ORDER BY end_date ASC
	`
	var contracts []*model.ServiceContract
	if err := r.db.SelectContext(ctx, &contracts, query, model.ContractStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active contracts: %w", err)
	}
	return contracts, nil
}
