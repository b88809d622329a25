package coverage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/model"
	"github.com/simecdev/simec-api/internal/repository"
)

// Service manages the two expiring-coverage entities: service contracts and
// insurance policies.
type Service struct {
	contracts repository.ContractRepository
	insurance repository.InsuranceRepository
}

func NewService(contracts repository.ContractRepository, insurance repository.InsuranceRepository) *Service {
	return &Service{
		contracts: contracts,
		insurance: insurance,
	}
}

func (s *Service) CreateContract(ctx context.Context, contract *model.ServiceContract) error {
	if err := validateDates(contract.StartDate, contract.EndDate); err != nil {
		return fmt.Errorf("invalid contract: %w", err)
	}
	if contract.Status == "" {
		contract.Status = model.ContractStatusActive
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*model.ServiceContract, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return contract, nil
}

func (s *Service) ListContracts(ctx context.Context) ([]*model.ServiceContract, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (s *Service) CreateInsurancePolicy(ctx context.Context, policy *model.InsurancePolicy) error {
	if err := validateDates(policy.StartDate, policy.EndDate); err != nil {
		return fmt.Errorf("invalid insurance policy: %w", err)
	}
	if policy.Status == "" {
		policy.Status = model.InsuranceStatusActive
	}

	if err := s.insurance.Create(ctx, policy); err != nil {
		return fmt.Errorf("failed to create insurance policy: %w", err)
	}
	return nil
}

func (s *Service) GetInsurancePolicy(ctx context.Context, id uuid.UUID) (*model.InsurancePolicy, error) {
	policy, err := s.insurance.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance policy: %w", err)
	}
	return policy, nil
}

func (s *Service) ListInsurancePolicies(ctx context.Context) ([]*model.InsurancePolicy, error) {
	policies, err := s.insurance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}
	return policies, nil
}

func validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}
