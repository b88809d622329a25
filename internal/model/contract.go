package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusExpired   ContractStatus = "expired"
	ContractStatusRescinded ContractStatus = "rescinded"
)

type ServiceContract struct {
	Base
	ContractNumber string         `db:"contract_number" json:"contract_number"`
	Vendor         string         `db:"vendor" json:"vendor"`
	Description    string         `db:"description" json:"description,omitempty"`
	EquipmentID    *uuid.UUID     `db:"equipment_id" json:"equipment_id,omitempty"`
	Status         ContractStatus `db:"status" json:"status"`
	StartDate      time.Time      `db:"start_date" json:"start_date"`
	EndDate        time.Time      `db:"end_date" json:"end_date"`
	MonthlyCost    float64        `db:"monthly_cost" json:"monthly_cost,omitempty"`
}
