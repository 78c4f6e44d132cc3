package pricing

import (
	"fmt"

	"bilty-backend/internal/models"
)

// DraftSnapshot: the fields of the consignment draft the applicator reads.
// The core never mutates the draft; it returns a Patch the caller merges.
type DraftSnapshot struct {
	Weight         float64
	Packages       float64
	IsDoorDelivery bool
	OtherCharge    float64 // existing value; door delivery adds to it
}

// Defaults: configured fallbacks used when no contract covers the selection.
type Defaults struct {
	MinimumWeight float64
	Labour        LabourDefaults
}

// Patch: the flat set of field updates Apply produces. Nil pointer = leave the
// draft's field alone; non-nil = overwrite with this value.
type Patch struct {
	Rate           *float64
	RateUnit       *models.RateUnit
	MinimumFreight *float64

	LabourRate *float64
	LabourUnit *models.LabourUnit

	BillCharge  *float64
	TollCharge  *float64
	OtherCharge *float64

	TransportName *string
	TransportGST  *string

	// DoorDeliveryCharge is the delta folded into OtherCharge, kept separately
	// so the UI can show what the door delivery added.
	DoorDeliveryCharge float64

	// UseMinimumWeight signals the built-in 50 kg floor applies (default path).
	UseMinimumWeight bool

	ContractFound bool
}

// Apply merges the resolved contract (nil = not found) and the draft into a
// patch. The isNoCharge override is evaluated last: it zeroes bill, toll and
// other charges regardless of anything computed earlier in the same pass.
func Apply(contract *models.RateContract, draft DraftSnapshot, city CityInfo, defaults Defaults) (Patch, error) {
	var p Patch

	if contract == nil {
		// Default path: city-dependent labour rate, built-in minimum weight.
		rate := DefaultLabourRate(city, defaults.Labour)
		unit := models.LabourUnitPerNag
		p.LabourRate = &rate
		p.LabourUnit = &unit
		p.UseMinimumWeight = true
		return p, nil
	}

	p.ContractFound = true

	if contract.Rate > 0 {
		unit := contract.RateUnit
		if unit == "" {
			unit = models.RateUnitPerKg
		}
		if !unit.Valid() {
			return Patch{}, fmt.Errorf("%w: %q", ErrUnknownRateUnit, unit)
		}
		rate := contract.Rate
		minFreight := contract.FreightMinimumAmount
		p.Rate = &rate
		p.RateUnit = &unit
		p.MinimumFreight = &minFreight
	}

	if contract.LabourRate != nil {
		// 0 is a real agreed rate (free labour), so presence matters, not value.
		unit := contract.LabourUnit
		if unit == "" {
			unit = models.LabourUnitPerNag
		}
		if !unit.Valid() {
			return Patch{}, fmt.Errorf("%w: %q", ErrUnknownLabourUnit, unit)
		}
		rate := Num(contract.LabourRate)
		p.LabourRate = &rate
		p.LabourUnit = &unit
	}

	if contract.BiltyCharge != nil {
		bc := Num(contract.BiltyCharge)
		p.BillCharge = &bc
	}

	if contract.IsTollTaxApplicable {
		if contract.TollTaxAmount != nil {
			tc := Num(contract.TollTaxAmount)
			p.TollCharge = &tc
		}
	} else {
		zero := 0.0
		p.TollCharge = &zero
	}

	if contract.TransportName != "" {
		name := contract.TransportName
		p.TransportName = &name
	}
	if contract.TransportGST != "" {
		gst := contract.TransportGST
		p.TransportGST = &gst
	}

	if draft.IsDoorDelivery {
		if dd := CalculateDoorDelivery(draft.Packages, draft.Weight, contract); dd > 0 {
			total := Round2(draft.OtherCharge + dd)
			p.OtherCharge = &total
			p.DoorDeliveryCharge = dd
		}
	}

	if contract.IsNoCharge {
		// Last word: the no-charge contract waives all ancillary charges.
		zero := 0.0
		z2, z3 := zero, zero
		p.BillCharge = &zero
		p.TollCharge = &z2
		p.OtherCharge = &z3
		p.DoorDeliveryCharge = 0
	}

	return p, nil
}
