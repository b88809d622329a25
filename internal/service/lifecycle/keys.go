package lifecycle

import (
	"fmt"

	"github.com/google/uuid"
)

// AlertKey is a deterministic alert identifier. Each constructor owns a
// distinct prefix, so keys cannot collide across alert families. Re-deriving
// a key for the same condition always yields the same value, which is what
// makes alert generation an idempotent upsert.
type AlertKey string

func (k AlertKey) String() string { return string(k) }

// maintenanceConfirmKey identifies the single end-of-service-window alert
// for an order.
func maintenanceConfirmKey(orderID uuid.UUID) AlertKey {
	return AlertKey(fmt.Sprintf("maint-confirm-%s", orderID))
}

// proximityKey identifies the alert for one (order, threshold) pair.
func proximityKey(orderID uuid.UUID, label string) AlertKey {
	return AlertKey(fmt.Sprintf("maint-prox-%s-%s", orderID, label))
}

func contractKey(contractID uuid.UUID) AlertKey {
	return AlertKey(fmt.Sprintf("contract-%s", contractID))
}

func insuranceKey(policyID uuid.UUID) AlertKey {
	return AlertKey(fmt.Sprintf("insurance-%s", policyID))
}
