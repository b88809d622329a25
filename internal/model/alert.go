package model

import (
	"time"

	"github.com/google/uuid"
)

type AlertPriority string

const (
	AlertPriorityHigh   AlertPriority = "high"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityLow    AlertPriority = "low"
)

type AlertCategory string

const (
	AlertCategoryMaintenance AlertCategory = "maintenance"
	AlertCategoryContract    AlertCategory = "contract"
	AlertCategoryInsurance   AlertCategory = "insurance"
)

// Alert is keyed by a deterministic synthetic id so that re-detecting the
// same condition upserts the existing row instead of inserting a duplicate.
type Alert struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Subtitle    string        `db:"subtitle" json:"subtitle,omitempty"`
	Category    AlertCategory `db:"category" json:"category"`
	Priority    AlertPriority `db:"priority" json:"priority"`
	Link        string        `db:"link" json:"link,omitempty"`
	TriggeredAt time.Time     `db:"triggered_at" json:"triggered_at"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// AlertReadState is the per-user seen overlay, unique on (alert_id, user_id).
type AlertReadState struct {
	AlertID string     `db:"alert_id" json:"alert_id"`
	UserID  uuid.UUID  `db:"user_id" json:"user_id"`
	Seen    bool       `db:"seen" json:"seen"`
	SeenAt  *time.Time `db:"seen_at" json:"seen_at,omitempty"`
}

// UserAlert is an alert joined with the requesting user's read state.
type UserAlert struct {
	Alert
	Seen   bool       `db:"seen" json:"seen"`
	SeenAt *time.Time `db:"seen_at" json:"seen_at,omitempty"`
}

type AlertFilters struct {
	Category AlertCategory
	Priority AlertPriority
	Unseen   bool
}
