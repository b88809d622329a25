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

type insuranceRepository struct {
	db *sqlx.DB
}

func NewInsuranceRepository(db *sqlx.DB) repository.InsuranceRepository {
	return &insuranceRepository{db: db}
}

func (r *insuranceRepository) Create(ctx context.Context, policy *model.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (
			id, policy_number, insurer, equipment_id, status,
			start_date, end_date, covered_value,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	policy.ID = uuid.New()
	policy.CreatedAt = time.Now().UTC()
	policy.UpdatedAt = policy.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		policy.ID,
		policy.PolicyNumber,
		policy.Insurer,
		policy.EquipmentID,
		policy.Status,
		policy.StartDate,
		policy.EndDate,
		policy.CoveredValue,
		policy.CreatedAt,
		policy.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return nil
}

func (r *insuranceRepository) Get(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error) {
	query := `
		SELECT id, policy_number, insurer, equipment_id, status,
			   start_date, end_date, covered_value,
			   created_at, updated_at
		FROM insurance_policies
		WHERE id = $1
	`
	var policy model.InsurancePolicy
	err := r.db.GetContext(ctx, &policy, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insurance policy not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance policy: %w", err)
	}
	return &policy, nil
}

func (r *insuranceRepository) Update(ctx context.Context, policy *model.InsurancePolicy) error {
	query := `
		UPDATE insurance_policies
		SET policy_number = $1, insurer = $2, status = $3,
			start_date = $4, end_date = $5, covered_value = $6,
			updated_at = $7
		WHERE id = $8
	`
	policy.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		policy.PolicyNumber,
		policy.Insurer,
		policy.Status,
		policy.StartDate,
		policy.EndDate,
		policy.CoveredValue,
		policy.UpdatedAt,
		policy.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update insurance policy: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("insurance policy not found")
	}

	return nil
}

func (r *insuranceRepository) List(ctx context.Context) ([]*model.InsurancePolicy, error) {
	query := `
		SELECT id, policy_number, insurer, equipment_id, status,
			   start_date, end_date, covered_value,
			   created_at, updated_at
		FROM insurance_policies
		ORDER BY end_date ASC
	`
	var policies []*model.InsurancePolicy
	if err := r.db.SelectContext(ctx, &policies, query); err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}
	return policies, nil
}

func (r *insuranceRepository) ListActive(ctx context.Context) ([]*model.InsurancePolicy, error) {
	query := `
		SELECT id, policy_number, insurer, equipment_id, status,
			   start_date, end_date, covered_value,
			   created_at, updated_at
		FROM insurance_policies
		WHERE status = $1
		ORDER BY end_date ASC
	`
	var policies []*model.InsurancePolicy
	if err := r.db.SelectContext(ctx, &policies, query, model.InsuranceStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active insurance policies: %w", err)
	}
	return policies, nil
}
