package pricing

import (
	"errors"
	"testing"

	"bilty-backend/internal/models"
)

func TestCalculateLabour_UnitDispatch(t *testing.T) {
	cases := []struct {
		name     string
		packages float64
		weight   float64
		rate     float64
		unit     models.LabourUnit
		want     float64
	}{
		{"per nag", 10, 40, 20, models.LabourUnitPerNag, 200},
		{"per kg", 10, 40, 20, models.LabourUnitPerKg, 800},
		{"per bilty flat", 10, 40, 500, models.LabourUnitPerBilty, 500},
		{"empty defaults to per nag", 10, 40, 20, "", 200},
		{"zero rate", 10, 40, 0, models.LabourUnitPerNag, 0},
	}
	for _, c := range cases {
		got, err := CalculateLabour(c.packages, c.weight, c.rate, c.unit)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCalculateLabour_UnknownUnit(t *testing.T) {
	_, err := CalculateLabour(10, 40, 20, models.LabourUnit("PER_TRUCK"))
	if !errors.Is(err, ErrUnknownLabourUnit) {
		t.Fatalf("err = %v, want ErrUnknownLabourUnit", err)
	}
}

func TestDefaultLabourRate(t *testing.T) {
	defaults := LabourDefaults{HubMarker: "RAIPUR", HubRate: 5, GeneralRate: 10}

	cases := []struct {
		name string
		city CityInfo
		want float64
	}{
		{"hub by name", CityInfo{Name: "Raipur"}, 5},
		{"hub case-insensitive", CityInfo{Name: "RAIPUR CITY"}, 5},
		{"hub by code", CityInfo{Name: "Head Office", Code: "raipur-1"}, 5},
		{"outstation", CityInfo{Name: "Nagpur", Code: "NGP"}, 10},
		{"empty city", CityInfo{}, 10},
	}
	for _, c := range cases {
		if got := DefaultLabourRate(c.city, defaults); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDefaultLabourRate_NoMarkerConfigured(t *testing.T) {
	d := LabourDefaults{HubRate: 5, GeneralRate: 10}
	if got := DefaultLabourRate(CityInfo{Name: "Raipur"}, d); got != 10 {
		t.Errorf("empty marker must never match, got %v", got)
	}
}
