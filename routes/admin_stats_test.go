package routes

import "testing"

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		current, previous int64
		want              float64
	}{
		{150, 100, 50},
		{100, 150, -33.3},
		{100, 100, 0},
		{0, 100, -100},
		{42, 0, 0},
		{0, 0, 0},
	}

	for _, c := range cases {
		if got := growthRate(c.current, c.previous); got != c.want {
			t.Errorf("growthRate(%d, %d) = %v, want %v", c.current, c.previous, got, c.want)
		}
	}
}
