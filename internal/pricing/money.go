package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// NaN/Inf never propagates into a charge field.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Num coerces an optional numeric field to a usable value. This is the single
// numeric boundary of the calculators: missing or garbage inputs become 0 here,
// they are never thrown.
func Num(p *float64) float64 {
	if p == nil {
		return 0
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0
	}
	return *p
}
