package service

import (
	"testing"
	"time"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		period string
		want   time.Time
	}{
		{"7d", now.AddDate(0, 0, -7)},
		{"30d", now.AddDate(0, 0, -30)},
		{"90d", now.AddDate(0, 0, -90)},
		{"", time.Time{}},
		{"1y", time.Time{}},
	}

	for _, tc := range cases {
		if got := periodStart(tc.period, now); !got.Equal(tc.want) {
			t.Fatalf("periodStart(%q) = %v, want %v", tc.period, got, tc.want)
		}
	}
}
