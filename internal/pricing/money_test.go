package pricing

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{99.994, 99.99},
		{99.995, 100.00}, // half rounds up
		{100.005, 100.01},
		{33.333 * 3, 100.00},
		{0, 0},
		{7.5, 7.5},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNum(t *testing.T) {
	if Num(nil) != 0 {
		t.Error("Num(nil) != 0")
	}
	nan := math.NaN()
	if Num(&nan) != 0 {
		t.Error("Num(NaN) != 0")
	}
	v := 12.5
	if Num(&v) != 12.5 {
		t.Error("Num(&12.5) != 12.5")
	}
}
