package timeutil

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m"},
		{45 * time.Minute, "45m"},
		{time.Hour, "1h"},
		{2 * time.Hour, "2h"},
		{time.Hour + time.Minute + time.Second, "1h 1m"},
		{3*time.Hour + 30*time.Minute, "3h 30m"},
		{500 * time.Millisecond, "0m"},
		{-time.Minute, "0m"},
	}

	for _, tc := range cases {
		got := FormatDuration(tc.in)
		if got != tc.want {
			t.Errorf("FormatDuration(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDayFormat(t *testing.T) {
	d := time.Date(2024, time.March, 7, 13, 0, 0, 0, time.UTC)

	if got := DayFormat(d); got != 20240307 {
		t.Errorf("DayFormat: got %d, want 20240307", got)
	}
}

func TestRoundToStartAndEnd(t *testing.T) {
	d := time.Date(2024, time.March, 7, 13, 45, 12, 0, time.UTC)

	start := RoundToStart(d)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("RoundToStart: got %v", start)
	}

	end := RoundToEnd(d)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("RoundToEnd: got %v", end)
	}

	if start.Day() != d.Day() || end.Day() != d.Day() {
		t.Error("rounding must not change the day")
	}
}
