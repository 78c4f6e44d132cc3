package pricing

import (
	"testing"

	"bilty-backend/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestApply_ContractRateAndFloor(t *testing.T) {
	contract := &models.RateContract{
		Rate:                 5,
		RateUnit:             models.RateUnitPerKg,
		FreightMinimumAmount: 300,
	}
	p, err := Apply(contract, DraftSnapshot{Weight: 100, Packages: 10}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.ContractFound {
		t.Error("ContractFound = false")
	}
	if p.Rate == nil || *p.Rate != 5 {
		t.Errorf("Rate = %v, want 5", p.Rate)
	}
	if p.RateUnit == nil || *p.RateUnit != models.RateUnitPerKg {
		t.Errorf("RateUnit = %v, want PER_KG", p.RateUnit)
	}
	if p.MinimumFreight == nil || *p.MinimumFreight != 300 {
		t.Errorf("MinimumFreight = %v, want 300", p.MinimumFreight)
	}
}

func TestApply_RateUnitDefaultsToPerKg(t *testing.T) {
	contract := &models.RateContract{Rate: 5}
	p, err := Apply(contract, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RateUnit == nil || *p.RateUnit != models.RateUnitPerKg {
		t.Errorf("RateUnit = %v, want default PER_KG", p.RateUnit)
	}
}

func TestApply_LabourZeroIsPresent(t *testing.T) {
	// An agreed labour rate of 0 means free labour and must be patched, not
	// treated as absent.
	contract := &models.RateContract{Rate: 5, LabourRate: fptr(0)}
	p, err := Apply(contract, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LabourRate == nil || *p.LabourRate != 0 {
		t.Errorf("LabourRate = %v, want present 0", p.LabourRate)
	}
	if p.LabourUnit == nil || *p.LabourUnit != models.LabourUnitPerNag {
		t.Errorf("LabourUnit = %v, want default PER_NAG", p.LabourUnit)
	}
}

func TestApply_TollCharge(t *testing.T) {
	p, err := Apply(&models.RateContract{
		Rate:                5,
		IsTollTaxApplicable: true,
		TollTaxAmount:       fptr(80),
	}, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TollCharge == nil || *p.TollCharge != 80 {
		t.Errorf("TollCharge = %v, want 80", p.TollCharge)
	}

	p, err = Apply(&models.RateContract{
		Rate:                5,
		IsTollTaxApplicable: false,
		TollTaxAmount:       fptr(80), // present but not applicable: forced to 0
	}, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TollCharge == nil || *p.TollCharge != 0 {
		t.Errorf("TollCharge = %v, want forced 0", p.TollCharge)
	}
}

func TestApply_TransportPassThrough(t *testing.T) {
	p, err := Apply(&models.RateContract{
		Rate:          5,
		TransportName: "Shree Roadlines",
		TransportGST:  "22AAAAA0000A1Z5",
	}, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TransportName == nil || *p.TransportName != "Shree Roadlines" {
		t.Errorf("TransportName = %v", p.TransportName)
	}
	if p.TransportGST == nil || *p.TransportGST != "22AAAAA0000A1Z5" {
		t.Errorf("TransportGST = %v", p.TransportGST)
	}
}

func TestApply_DoorDeliveryAdditive(t *testing.T) {
	contract := &models.RateContract{Rate: 5, DDChargePerNag: 10}
	draft := DraftSnapshot{Weight: 40, Packages: 4, IsDoorDelivery: true, OtherCharge: 25}
	p, err := Apply(contract, draft, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DoorDeliveryCharge != 40 {
		t.Errorf("DoorDeliveryCharge = %v, want 40", p.DoorDeliveryCharge)
	}
	// Added to the existing other charge, never replacing it.
	if p.OtherCharge == nil || *p.OtherCharge != 65 {
		t.Errorf("OtherCharge = %v, want 25 + 40 = 65", p.OtherCharge)
	}
}

func TestApply_DoorDeliveryNotRequested(t *testing.T) {
	contract := &models.RateContract{Rate: 5, DDChargePerNag: 10}
	p, err := Apply(contract, DraftSnapshot{Packages: 4, OtherCharge: 25}, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OtherCharge != nil || p.DoorDeliveryCharge != 0 {
		t.Errorf("godown delivery must not touch other charge, got %+v", p)
	}
}

func TestApply_NoChargeOverridesEverything(t *testing.T) {
	contract := &models.RateContract{
		Rate:                5,
		BiltyCharge:         fptr(50),
		IsTollTaxApplicable: true,
		TollTaxAmount:       fptr(80),
		DDChargePerNag:      10,
		IsNoCharge:          true,
	}
	draft := DraftSnapshot{Weight: 40, Packages: 4, IsDoorDelivery: true, OtherCharge: 25}
	p, err := Apply(contract, draft, CityInfo{}, Defaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BillCharge == nil || *p.BillCharge != 0 {
		t.Errorf("BillCharge = %v, want forced 0", p.BillCharge)
	}
	if p.TollCharge == nil || *p.TollCharge != 0 {
		t.Errorf("TollCharge = %v, want forced 0", p.TollCharge)
	}
	if p.OtherCharge == nil || *p.OtherCharge != 0 {
		t.Errorf("OtherCharge = %v, want forced 0", p.OtherCharge)
	}
	if p.DoorDeliveryCharge != 0 {
		t.Errorf("DoorDeliveryCharge = %v, want 0", p.DoorDeliveryCharge)
	}
	// The freight rate itself is not an ancillary charge and survives.
	if p.Rate == nil || *p.Rate != 5 {
		t.Errorf("Rate = %v, want 5", p.Rate)
	}
}

func TestApply_NoContractDefaults(t *testing.T) {
	defaults := Defaults{
		MinimumWeight: 50,
		Labour:        LabourDefaults{HubMarker: "RAIPUR", HubRate: 5, GeneralRate: 10},
	}
	p, err := Apply(nil, DraftSnapshot{Weight: 30, Packages: 2}, CityInfo{Name: "Nagpur"}, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ContractFound {
		t.Error("ContractFound = true, want false")
	}
	if p.LabourRate == nil || *p.LabourRate != 10 {
		t.Errorf("LabourRate = %v, want outstation default 10", p.LabourRate)
	}
	if p.LabourUnit == nil || *p.LabourUnit != models.LabourUnitPerNag {
		t.Errorf("LabourUnit = %v, want PER_NAG", p.LabourUnit)
	}
	if !p.UseMinimumWeight {
		t.Error("UseMinimumWeight = false, want true")
	}
	if p.Rate != nil || p.BillCharge != nil || p.TollCharge != nil {
		t.Errorf("default path must not set contract fields, got %+v", p)
	}
}

func TestApply_UnknownContractUnit(t *testing.T) {
	_, err := Apply(&models.RateContract{Rate: 5, RateUnit: "PER_TON"}, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err == nil {
		t.Fatal("expected error for unknown rate unit, got nil")
	}
	_, err = Apply(&models.RateContract{Rate: 5, LabourRate: fptr(2), LabourUnit: "PER_TRUCK"}, DraftSnapshot{}, CityInfo{}, Defaults{})
	if err == nil {
		t.Fatal("expected error for unknown labour unit, got nil")
	}
}
