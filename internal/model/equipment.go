package model

import (
	"time"
)

type Equipment struct {
	Base
	AssetTag     string     `db:"asset_tag" json:"asset_tag"`
	SerialNumber string     `db:"serial_number" json:"serial_number"`
	Name         string     `db:"name" json:"name"`
	Manufacturer string     `db:"manufacturer" json:"manufacturer,omitempty"`
	Model        string     `db:"model" json:"model,omitempty"`
	Sector       string     `db:"sector" json:"sector"`
	Operational  bool       `db:"operational" json:"operational"`
	AcquiredAt   *time.Time `db:"acquired_at" json:"acquired_at,omitempty"`
}

type EquipmentFilters struct {
	Sector      string
	Operational *bool
	SearchTerm  string
}

type UpdateEquipmentStatusRequest struct {
	Operational bool   `json:"operational"`
	Reason      string `json:"reason" validate:"max=500"`
}
