package pricing

import (
	"fmt"

	"bilty-backend/internal/models"
)

type FreightResult struct {
	CalculatedFreight float64 // raw formula output, before the floor
	FreightAmount     float64 // after minimum-freight floor, 2 decimals
	EffectiveRate     float64 // back-computed display rate when the floor hit
	IsMinimumApplied  bool
}

// CalculateFreight converts weight/packages and a unit-tagged rate into the
// freight amount, raising it to minimumFreight when the formula lands below it.
// When the floor hits, EffectiveRate is recomputed as minimumFreight/weight so
// the operator sees the rate actually being charged per kg.
func CalculateFreight(weight, packages, rate float64, unit models.RateUnit, minimumFreight float64) (FreightResult, error) {
	var calculated float64
	switch unit {
	case models.RateUnitPerKg:
		calculated = weight * rate
	case models.RateUnitPerNag:
		calculated = packages * rate
	default:
		return FreightResult{}, fmt.Errorf("%w: %q", ErrUnknownRateUnit, unit)
	}

	res := FreightResult{
		CalculatedFreight: calculated,
		FreightAmount:     Round2(calculated),
		EffectiveRate:     Round2(rate),
	}
	if minimumFreight > 0 && calculated < minimumFreight {
		res.IsMinimumApplied = true
		res.FreightAmount = Round2(minimumFreight)
		if weight > 0 {
			res.EffectiveRate = Round2(minimumFreight / weight)
		}
		// weight == 0: keep the nominal rate, never divide by zero
	}
	return res, nil
}
