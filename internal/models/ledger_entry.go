package models

import "time"

type LedgerEntryType string

const (
	LedgerDebit  LedgerEntryType = "debit"  // party owes us
	LedgerCredit LedgerEntryType = "credit" // payment received
)

// LedgerEntry: one line of a party's running account. Billed bilties post a
// debit automatically; payments are entered manually.
type LedgerEntry struct {
	ID          uint `gorm:"primaryKey"`
	PartyID     uint `gorm:"index;not null"`
	Party       Party
	BiltyID     *uint
	Bilty       *Bilty
	Date        time.Time       `gorm:"index;not null"`
	Type        LedgerEntryType `gorm:"size:10;not null"`
	Amount      float64         `gorm:"not null"`
	Description string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
