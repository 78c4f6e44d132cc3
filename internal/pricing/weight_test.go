package pricing

import "testing"

func TestNormalizeWeight_AboveMinimum(t *testing.T) {
	for _, w := range []float64{50, 50.01, 80, 1200} {
		ew := NormalizeWeight(w, 50)
		if ew.EffectiveWeight != w {
			t.Errorf("NormalizeWeight(%v, 50).EffectiveWeight = %v, want %v", w, ew.EffectiveWeight, w)
		}
		if ew.IsMinimumApplied {
			t.Errorf("NormalizeWeight(%v, 50) should not apply the minimum", w)
		}
	}
}

func TestNormalizeWeight_BelowMinimum(t *testing.T) {
	ew := NormalizeWeight(30, 50)
	if ew.EffectiveWeight != 50 {
		t.Errorf("EffectiveWeight = %v, want 50", ew.EffectiveWeight)
	}
	if !ew.IsMinimumApplied {
		t.Error("IsMinimumApplied = false, want true")
	}
	if ew.ActualWeight != 30 || ew.MinimumWeight != 50 {
		t.Errorf("actual/minimum = %v/%v, want 30/50", ew.ActualWeight, ew.MinimumWeight)
	}
}

func TestNormalizeWeight_ZeroWeight(t *testing.T) {
	ew := NormalizeWeight(0, 50)
	if ew.EffectiveWeight != 50 || !ew.IsMinimumApplied {
		t.Errorf("got %+v, want floor applied at 50", ew)
	}
}
