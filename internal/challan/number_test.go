package challan

import "testing"

func TestFormatChallanNo(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "CH-000001"},
		{42, "CH-000042"},
		{123456, "CH-123456"},
		{1000000, "CH-1000000"}, // grows past the padding, never truncates
	}
	for _, c := range cases {
		if got := formatChallanNo(c.n); got != c.want {
			t.Errorf("formatChallanNo(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
