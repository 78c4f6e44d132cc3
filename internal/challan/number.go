package challan

import (
	"errors"
	"fmt"

	"bilty-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const challanSeries = "CH"

// nextChallanNo reserves the next challan number inside tx, the same way
// bilty bookings reserve GR numbers. The number is assigned before the row is
// inserted, so the unique index on challan_no never sees a placeholder value.
func nextChallanNo(tx *gorm.DB) (string, error) {
	var seq models.NumberSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("series = ?", challanSeries).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.NumberSequence{Series: challanSeries, NextNumber: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create challan sequence: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("lock challan sequence: %w", err)
	}

	n := seq.NextNumber
	seq.NextNumber = n + 1
	if err := tx.Save(&seq).Error; err != nil {
		return "", fmt.Errorf("advance challan sequence: %w", err)
	}

	return formatChallanNo(n), nil
}

func formatChallanNo(n int64) string {
	return fmt.Sprintf("%s-%06d", challanSeries, n)
}
