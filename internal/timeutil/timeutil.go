// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/araddon/dateparse"
)

const (
	HoursInADay      = 24
	MaxHoursInAMonth = 744  // 31 day months
	MaxHoursInAYear  = 8784 // Leap years
)

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DayFormat expresses a date as an integer in YYYYMMDD form so it can
// serve as a sortable aggregation key.
func DayFormat(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// FromStr parses a date string in any recognisable format.
func FromStr(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}

// FormatDuration renders a duration in the journal's cascading
// display format: hours and minutes whenever either is nonzero,
// seconds only when both are zero, and "0m" for a zero duration.
// Examples: "1h 1m", "2h", "45m", "45s", "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)

	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	case secs > 0:
		return fmt.Sprintf("%ds", secs)
	default:
		return "0m"
	}
}
