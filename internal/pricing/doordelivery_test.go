package pricing

import (
	"testing"

	"bilty-backend/internal/models"
)

func TestCalculateDoorDelivery_PerNagPriority(t *testing.T) {
	// Both unit charges set: per-nag wins, per-kg is ignored, never summed.
	contract := &models.RateContract{DDChargePerNag: 10, DDChargePerKg: 5}
	got := CalculateDoorDelivery(4, 40, contract)
	if got != 40 {
		t.Errorf("got %v, want 40 (4 nags * 10), not per-kg 200 or their sum", got)
	}
}

func TestCalculateDoorDelivery_PerKgFallback(t *testing.T) {
	contract := &models.RateContract{DDChargePerKg: 5}
	if got := CalculateDoorDelivery(4, 40, contract); got != 200 {
		t.Errorf("got %v, want 200", got)
	}
}

func TestCalculateDoorDelivery_NoCharges(t *testing.T) {
	if got := CalculateDoorDelivery(4, 40, &models.RateContract{}); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestCalculateDoorDelivery_NilContract(t *testing.T) {
	if got := CalculateDoorDelivery(4, 40, nil); got != 0 {
		t.Errorf("got %v, want 0: there is no default door-delivery charge", got)
	}
}
