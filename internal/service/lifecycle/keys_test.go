package lifecycle

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAlertKeys_Deterministic(t *testing.T) {
	orderID := uuid.New()

	assert.Equal(t, maintenanceConfirmKey(orderID), maintenanceConfirmKey(orderID))
	assert.Equal(t, proximityKey(orderID, "start-10min"), proximityKey(orderID, "start-10min"))
	assert.Equal(t, fmt.Sprintf("maint-confirm-%s", orderID), maintenanceConfirmKey(orderID).String())
	assert.Equal(t, fmt.Sprintf("maint-prox-%s-end-10min", orderID), proximityKey(orderID, "end-10min").String())
}

func TestAlertKeys_NoCrossCategoryCollision(t *testing.T) {
	// Same entity id in every family must still yield distinct keys.
	id := uuid.New()

	keys := map[AlertKey]bool{
		maintenanceConfirmKey(id):       true,
		proximityKey(id, "start-10min"): true,
		contractKey(id):                 true,
		insuranceKey(id):                true,
	}

	assert.Len(t, keys, 4)
}

func TestProximityKeys_DistinctPerThreshold(t *testing.T) {
	orderID := uuid.New()

	seen := map[AlertKey]bool{}
	for _, th := range proximityThresholds {
		seen[proximityKey(orderID, th.label)] = true
	}

	assert.Len(t, seen, len(proximityThresholds))
}
