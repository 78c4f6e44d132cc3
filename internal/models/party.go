package models

import "time"

// Party: consignor or consignee. The same record can appear on either side
// of a bilty, so the role is not fixed on the party itself.
type Party struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null;index"`
	GSTIN     string `gorm:"size:20"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	CityName  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
