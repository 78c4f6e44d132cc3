package models

import "time"

type BiltyStatus string

const (
	BiltyStatusBooked     BiltyStatus = "booked"
	BiltyStatusDispatched BiltyStatus = "dispatched"
	BiltyStatusDelivered  BiltyStatus = "delivered"
	BiltyStatusCancelled  BiltyStatus = "cancelled"
)

type DeliveryType string

const (
	DeliveryTypeGodown DeliveryType = "godown" // consignee collects
	DeliveryTypeDoor   DeliveryType = "door"   // last-mile delivery
)

type PaymentMode string

const (
	PaymentModePaid   PaymentMode = "paid"   // consignor paid at booking
	PaymentModeToPay  PaymentMode = "to_pay" // consignee pays at destination
	PaymentModeBilled PaymentMode = "billed" // monthly billing to consignor
)

// Bilty: the consignment note, the priced shipment document.
type Bilty struct {
	ID            uint      `gorm:"primaryKey"`
	GRNumber      string    `gorm:"size:20;uniqueIndex;not null"`
	Date          time.Time `gorm:"index;not null"`
	ConsignorID   uint      `gorm:"index;not null"`
	Consignor     Party
	ConsigneeID   uint `gorm:"index;not null"`
	Consignee     Party
	DestinationID uint `gorm:"index;not null"`
	Destination   City

	PackageCount  float64      `gorm:"not null"` // nags
	Weight        float64      `gorm:"not null"` // actual kg
	ChargedWeight float64      `gorm:"not null"` // after minimum-weight floor
	Contents      string       `gorm:"size:255"`
	DeliveryType  DeliveryType `gorm:"size:10;not null;default:godown"`
	PaymentMode   PaymentMode  `gorm:"size:10;not null;default:to_pay"`

	Rate           float64  `gorm:"not null"`
	RateUnit       RateUnit `gorm:"size:10;not null"`
	MinimumFreight float64
	FreightAmount  float64 `gorm:"not null"`
	LabourCharge   float64
	BillCharge     float64
	TollCharge     float64
	OtherCharge    float64
	TotalAmount    float64 `gorm:"not null"`

	TransportName string `gorm:"size:150"`
	TransportGST  string `gorm:"size:20;column:transport_gst"`
	EWayBillNo    string `gorm:"size:20;column:eway_bill_no"`

	Status    BiltyStatus `gorm:"size:15;not null;default:booked;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
