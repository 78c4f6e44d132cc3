package bilty

import (
	"errors"
	"fmt"

	"bilty-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextGRNumber reserves the next GR number for the series inside tx. The
// sequence row is locked FOR UPDATE so concurrent bookings serialize on it;
// the reservation commits or rolls back with the bilty itself.
func nextGRNumber(tx *gorm.DB, series string) (string, error) {
	var seq models.NumberSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("series = ?", series).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.NumberSequence{Series: series, NextNumber: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create gr sequence: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("lock gr sequence: %w", err)
	}

	n := seq.NextNumber
	seq.NextNumber = n + 1
	if err := tx.Save(&seq).Error; err != nil {
		return "", fmt.Errorf("advance gr sequence: %w", err)
	}

	return fmt.Sprintf("%s-%06d", series, n), nil
}
