package model

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled            MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress           MaintenanceStatus = "in_progress"
	MaintenanceStatusAwaitingConfirmation MaintenanceStatus = "awaiting_confirmation"
	MaintenanceStatusConcluded            MaintenanceStatus = "concluded"
	MaintenanceStatusCancelled            MaintenanceStatus = "cancelled"
)

// Terminal reports whether the engine must never mutate this order again.
func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceStatusConcluded || s == MaintenanceStatusCancelled
}

type MaintenanceType string

const (
	MaintenanceTypePreventive  MaintenanceType = "preventive"
	MaintenanceTypeCorrective  MaintenanceType = "corrective"
	MaintenanceTypeCalibration MaintenanceType = "calibration"
)

type MaintenanceOrder struct {
	Base
	OrderNumber    string            `db:"order_number" json:"order_number"`
	EquipmentID    uuid.UUID         `db:"equipment_id" json:"equipment_id"`
	Type           MaintenanceType   `db:"type" json:"type"`
	Status         MaintenanceStatus `db:"status" json:"status"`
	ScheduledStart time.Time         `db:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time         `db:"scheduled_end" json:"scheduled_end"`
	Technician     string            `db:"technician" json:"technician,omitempty"`
	Notes          string            `db:"notes" json:"notes,omitempty"`
	CancelReason   *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	ConfirmedAt    *time.Time        `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

type CreateMaintenanceOrderRequest struct {
	EquipmentID    uuid.UUID `json:"equipment_id" validate:"required,uuid"`
	Type           string    `json:"type" validate:"required,oneof=preventive corrective calibration"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" validate:"required,gtfield=ScheduledStart"`
	Technician     string    `json:"technician" validate:"max=255"`
	Notes          string    `json:"notes" validate:"max=1000"`
}

type ConfirmMaintenanceRequest struct {
	EquipmentOperational bool   `json:"equipment_operational"`
	Notes                string `json:"notes" validate:"max=1000"`
}

type CancelMaintenanceRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type MaintenanceOrderFilters struct {
	EquipmentID uuid.UUID
	Status      MaintenanceStatus
	StartDate   time.Time
	EndDate     time.Time
}
