package models

import "time"

type City struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Code      string `gorm:"size:20"` // short station code, e.g. "RPR"
	State     string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
