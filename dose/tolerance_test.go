package dose_test

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/sesh-cli/sesh/dose"
	"github.com/sesh-cli/sesh/internal/models"
)

func sessionAt(ts time.Time, weight, thc float64) models.Session {
	return models.Session{
		ID:        "s",
		StartTime: ts,
		Sharers:   1,
		Consumptions: []models.Consumption{
			{Timestamp: ts, WeightGrams: weight, THCPercent: thc},
		},
	}
}

func TestToleranceHalfLifeDecay(t *testing.T) {
	base := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)
	sessions := []models.Session{sessionAt(base, 1, 100)}

	cases := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"undecayed at event time", base, 1000},
		{"one half-life", base.Add(dose.HalfLife), 500},
		{"two half-lives", base.Add(2 * dose.HalfLife), 250},
		{"future event contributes full weight", base.Add(-time.Hour), 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dose.Tolerance(tc.at, sessions)
			if got != tc.want {
				t.Errorf("Tolerance at %v: got %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestToleranceSumsAcrossSessions(t *testing.T) {
	base := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)

	sessions := []models.Session{
		sessionAt(base, 1, 50),
		sessionAt(base, 1, 50),
	}

	if got := dose.Tolerance(base, sessions); got != 1000 {
		t.Errorf("got %v, want 1000", got)
	}
}

func TestToleranceUsesSessionSharers(t *testing.T) {
	base := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)

	sess := sessionAt(base, 1, 100)
	sess.Sharers = 4

	if got := dose.Tolerance(base, []models.Session{sess}); got != 250 {
		t.Errorf("got %v, want 250", got)
	}
}

func TestToleranceDecreasesOverTime(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)

		weight := rapid.Float64Range(0.5, 5).Draw(t, "weight")
		thc := rapid.Float64Range(10, 100).Draw(t, "thc")
		hoursA := rapid.IntRange(1, 200).Draw(t, "hoursA")
		gap := rapid.IntRange(1, 200).Draw(t, "gap")

		sessions := []models.Session{sessionAt(base, weight, thc)}

		earlier := dose.Tolerance(base.Add(time.Duration(hoursA)*time.Hour), sessions)
		later := dose.Tolerance(
			base.Add(time.Duration(hoursA+gap)*time.Hour),
			sessions,
		)

		if later > earlier {
			t.Fatalf(
				"tolerance grew over time: %v then %v",
				earlier, later,
			)
		}
	})
}

func TestToleranceEmptyHistory(t *testing.T) {
	if got := dose.Tolerance(time.Now(), nil); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
