package model

import (
	"time"

	"github.com/google/uuid"
)

type InsuranceStatus string

const (
	InsuranceStatusActive    InsuranceStatus = "active"
	InsuranceStatusExpired   InsuranceStatus = "expired"
	InsuranceStatusCancelled InsuranceStatus = "cancelled"
)

type InsurancePolicy struct {
	Base
	PolicyNumber string          `db:"policy_number" json:"policy_number"`
	Insurer      string          `db:"insurer" json:"insurer"`
	EquipmentID  *uuid.UUID      `db:"equipment_id" json:"equipment_id,omitempty"`
	Status       InsuranceStatus `db:"status" json:"status"`
	StartDate    time.Time       `db:"start_date" json:"start_date"`
	EndDate      time.Time       `db:"end_date" json:"end_date"`
	CoveredValue float64         `db:"covered_value" json:"covered_value,omitempty"`
}
