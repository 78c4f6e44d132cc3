package models

import "time"

type RateUnit string

const (
	RateUnitPerKg  RateUnit = "PER_KG"
	RateUnitPerNag RateUnit = "PER_NAG" // nag = package
)

func (u RateUnit) Valid() bool {
	return u == RateUnitPerKg || u == RateUnitPerNag
}

type LabourUnit string

const (
	LabourUnitPerKg    LabourUnit = "PER_KG"
	LabourUnitPerNag   LabourUnit = "PER_NAG"
	LabourUnitPerBilty LabourUnit = "PER_BILTY" // flat per consignment
)

func (u LabourUnit) Valid() bool {
	return u == LabourUnitPerKg || u == LabourUnitPerNag || u == LabourUnitPerBilty
}

// RateContract: a consignor's agreed pricing for one destination, valid for a
// date window. At most one contract should be effective per (consignor,
// destination) on any day; overlaps are resolved by latest EffectiveFrom.
type RateContract struct {
	ID            uint `gorm:"primaryKey"`
	ConsignorID   uint `gorm:"index:idx_rate_contracts_scope;not null"`
	Consignor     Party
	DestinationID uint `gorm:"index:idx_rate_contracts_scope;not null"`
	Destination   City
	EffectiveFrom time.Time  `gorm:"index;not null"`
	EffectiveTo   *time.Time // nil = open-ended

	Rate                 float64  `gorm:"not null"`
	RateUnit             RateUnit `gorm:"size:10;not null;default:PER_KG"`
	FreightMinimumAmount float64  // freight below this is raised to it

	LabourRate *float64 // nil = not agreed; 0 is a real agreed value
	LabourUnit LabourUnit `gorm:"size:10"`

	BiltyCharge         *float64 // flat document fee
	IsTollTaxApplicable bool
	TollTaxAmount       *float64

	DDChargePerNag float64 `gorm:"column:dd_charge_per_nag"` // door delivery, per package
	DDChargePerKg  float64 `gorm:"column:dd_charge_per_kg"`

	IsNoCharge bool // waives bill/toll/other charges entirely

	TransportName string `gorm:"size:150"`
	TransportGST  string `gorm:"size:20;column:transport_gst"`

	IsActive  bool `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
