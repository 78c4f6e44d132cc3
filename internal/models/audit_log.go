package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index;not null"`
	UserName    string      `gorm:"size:100"`
	EntityType  string      `gorm:"size:50;index;not null"` // "bilty", "challan", "rate_contract"...
	EntityID    uint        `gorm:"index"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:jsonb;default:null"`
	AfterData   string      `gorm:"type:jsonb;default:null"`
	CreatedAt   time.Time   `gorm:"index"`
}
