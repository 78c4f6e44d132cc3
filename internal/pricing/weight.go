package pricing

type EffectiveWeight struct {
	ActualWeight     float64
	MinimumWeight    float64
	EffectiveWeight  float64
	IsMinimumApplied bool
}

// NormalizeWeight applies the minimum-billable-weight floor. Pure, no I/O;
// the caller supplies the minimum (contract-specific or the configured 50 kg).
func NormalizeWeight(actual, minimum float64) EffectiveWeight {
	ew := EffectiveWeight{
		ActualWeight:    actual,
		MinimumWeight:   minimum,
		EffectiveWeight: actual,
	}
	if actual < minimum {
		ew.EffectiveWeight = minimum
		ew.IsMinimumApplied = true
	}
	return ew
}
