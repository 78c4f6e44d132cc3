package models

import "time"

// NumberSequence: single counter row per document series (GR numbers, challan
// numbers). The next number is reserved under a row lock so two operators
// saving at once never share a number.
type NumberSequence struct {
	ID         uint   `gorm:"primaryKey"`
	Series     string `gorm:"size:10;uniqueIndex;not null"`
	NextNumber int64  `gorm:"not null;default:1"`
	UpdatedAt  time.Time
}
