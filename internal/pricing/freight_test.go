package pricing

import (
	"errors"
	"testing"

	"bilty-backend/internal/models"
)

func TestCalculateFreight_FloorApplied(t *testing.T) {
	res, err := CalculateFreight(40, 10, 5, models.RateUnitPerKg, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CalculatedFreight != 200 {
		t.Errorf("CalculatedFreight = %v, want 200", res.CalculatedFreight)
	}
	if res.FreightAmount != 300 {
		t.Errorf("FreightAmount = %v, want 300", res.FreightAmount)
	}
	if !res.IsMinimumApplied {
		t.Error("IsMinimumApplied = false, want true")
	}
	// 300 / 40 = effective 7.5 per kg for display
	if res.EffectiveRate != 7.5 {
		t.Errorf("EffectiveRate = %v, want 7.5", res.EffectiveRate)
	}
}

func TestCalculateFreight_NoFloor(t *testing.T) {
	res, err := CalculateFreight(100, 10, 5, models.RateUnitPerKg, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CalculatedFreight != 500 || res.FreightAmount != 500 {
		t.Errorf("freight = %v/%v, want 500/500", res.CalculatedFreight, res.FreightAmount)
	}
	if res.IsMinimumApplied {
		t.Error("IsMinimumApplied = true, want false")
	}
	if res.EffectiveRate != 5 {
		t.Errorf("EffectiveRate = %v, want 5", res.EffectiveRate)
	}
}

func TestCalculateFreight_PerNag(t *testing.T) {
	res, err := CalculateFreight(40, 10, 25, models.RateUnitPerNag, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FreightAmount != 250 {
		t.Errorf("FreightAmount = %v, want 250", res.FreightAmount)
	}
}

func TestCalculateFreight_ZeroWeightFloor(t *testing.T) {
	// Floor hits with zero weight: the effective rate must fall back to the
	// nominal rate, never a division by zero.
	res, err := CalculateFreight(0, 5, 8, models.RateUnitPerKg, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FreightAmount != 150 || !res.IsMinimumApplied {
		t.Errorf("got %+v, want floored at 150", res)
	}
	if res.EffectiveRate != 8 {
		t.Errorf("EffectiveRate = %v, want nominal 8", res.EffectiveRate)
	}
}

func TestCalculateFreight_UnknownUnit(t *testing.T) {
	_, err := CalculateFreight(40, 10, 5, models.RateUnit("PER_TON"), 0)
	if !errors.Is(err, ErrUnknownRateUnit) {
		t.Fatalf("err = %v, want ErrUnknownRateUnit", err)
	}
}

func TestCalculateFreight_TwoDecimalRounding(t *testing.T) {
	res, err := CalculateFreight(33.335, 0, 3, models.RateUnitPerKg, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 33.335 * 3 = 100.005, half-up to 100.01
	if res.FreightAmount != 100.01 {
		t.Errorf("FreightAmount = %v, want 100.01", res.FreightAmount)
	}
}
