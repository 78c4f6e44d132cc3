package models

import "time"

type ChallanStatus string

const (
	ChallanStatusOpen       ChallanStatus = "open"
	ChallanStatusDispatched ChallanStatus = "dispatched"
	ChallanStatusClosed     ChallanStatus = "closed"
)

// Challan: dispatch manifest grouping bilties onto one vehicle trip.
type Challan struct {
	ID          uint      `gorm:"primaryKey"`
	ChallanNo   string    `gorm:"size:20;uniqueIndex;not null"`
	Date        time.Time `gorm:"index;not null"`
	VehicleNo   string    `gorm:"size:20;not null"`
	DriverName  string    `gorm:"size:100"`
	DriverPhone string    `gorm:"size:50"`
	ToCityID    uint      `gorm:"index;not null"`
	ToCity      City
	Freight     float64 // vehicle hire for the trip
	Advance     float64 // advance paid to driver
	Note        string  `gorm:"size:255"`

	Status    ChallanStatus `gorm:"size:15;not null;default:open"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ChallanItem `gorm:"foreignKey:ChallanID;constraint:OnDelete:CASCADE"`
}

type ChallanItem struct {
	ID        uint `gorm:"primaryKey"`
	ChallanID uint `gorm:"index;not null"`
	BiltyID   uint `gorm:"index;not null"`
	Bilty     Bilty
	CreatedAt time.Time
}
