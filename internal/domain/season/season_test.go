package season

import (
	"testing"
	"time"
)

func TestCurrent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"end of july stays on previous season", time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC), 2024},
		{"first of august rolls over", time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), 2025},
		{"january belongs to previous year season", time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC), 2025},
		{"december stays on current year season", time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Current(tc.now); got != tc.want {
				t.Fatalf("Current(%s) = %d, want %d", tc.now.Format(time.RFC3339), got, tc.want)
			}
		})
	}
}
