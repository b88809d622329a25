package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSubscription gates whether a recipient is emailed about an
// expiring entity. LeadTimeDays is the subscriber-configured window.
type NotificationSubscription struct {
	Base
	Name              string `db:"name" json:"name"`
	Email             string `db:"email" json:"email"`
	Active            bool   `db:"active" json:"active"`
	LeadTimeDays      int    `db:"lead_time_days" json:"lead_time_days"`
	NotifyContracts   bool   `db:"notify_contracts" json:"notify_contracts"`
	NotifyMaintenance bool   `db:"notify_maintenance" json:"notify_maintenance"`
	NotifyInsurance   bool   `db:"notify_insurance" json:"notify_insurance"`
}

type CreateSubscriptionRequest struct {
	Name              string `json:"name" validate:"required,max=255"`
	Email             string `json:"email" validate:"required,email"`
	LeadTimeDays      int    `json:"lead_time_days" validate:"required,min=1,max=365"`
	NotifyContracts   bool   `json:"notify_contracts"`
	NotifyMaintenance bool   `json:"notify_maintenance"`
	NotifyInsurance   bool   `json:"notify_insurance"`
}

type UpdateSubscriptionRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=255"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Active            *bool   `json:"active"`
	LeadTimeDays      *int    `json:"lead_time_days" validate:"omitempty,min=1,max=365"`
	NotifyContracts   *bool   `json:"notify_contracts"`
	NotifyMaintenance *bool   `json:"notify_maintenance"`
	NotifyInsurance   *bool   `json:"notify_insurance"`
}

// SentNotificationRecord marks that a subscription was already notified
// about an entity. Unique on (category, entity_id, subscription_id); at most
// one send per pair, ever.
type SentNotificationRecord struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	Category       AlertCategory `db:"category" json:"category"`
	EntityID       uuid.UUID     `db:"entity_id" json:"entity_id"`
	SubscriptionID uuid.UUID     `db:"subscription_id" json:"subscription_id"`
	SentAt         time.Time     `db:"sent_at" json:"sent_at"`
}

// DetailPair is one label/value row in a notification body. Order matters.
type DetailPair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NotificationMessage is the payload handed to the dispatcher.
type NotificationMessage struct {
	Recipient     string
	RecipientName string
	Subject       string
	Title         string
	Message       string
	Details       []DetailPair
	ActionLabel   string
	ActionURL     string
}
