package rates

import (
	"time"

	"bilty-backend/internal/models"
	"bilty-backend/internal/pricing"

	"gorm.io/gorm"
)

// Store is the gorm-backed pricing.ContractStore. The scope filter runs in
// SQL; effectiveness and the latest-start tie-break run through the shared
// selection logic so overlapping windows behave the same everywhere.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindEffective(consignorID, destinationID uint, asOf time.Time) (*models.RateContract, error) {
	var candidates []models.RateContract
	err := s.db.
		Where("consignor_id = ? AND destination_id = ? AND is_active = ?", consignorID, destinationID, true).
		Order("effective_from desc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return pricing.MostRecentEffective(candidates, asOf), nil
}
