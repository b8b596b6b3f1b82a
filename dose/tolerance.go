package dose

import (
	"math"
	"time"

	"github.com/sesh-cli/sesh/internal/models"
)

// HalfLife is the time for a dose contribution's decay factor to fall
// to one half.
const HalfLife = 48 * time.Hour

// toleranceScale converts the raw decayed gram sum into display
// units: raw × 1000, rounded to the nearest 0.1. The result is
// dimensionless ("tolerance units"), not a physical quantity.
const toleranceScale = 1000

// Tolerance aggregates the decayed dose contributions of every
// consumption event across all sessions into a single score at time
// now. Events in the past decay exponentially with a 48 hour
// half-life; events with future timestamps contribute their full,
// undecayed weight. For a fixed set of sessions the score is strictly
// decreasing in now once every event is in the past, down to the
// rounding grain of 0.1 units.
func Tolerance(now time.Time, sessions []models.Session) float64 {
	lambda := math.Ln2 / float64(HalfLife.Milliseconds())

	var raw float64

	for i := range sessions {
		sess := &sessions[i]

		for _, c := range sess.Consumptions {
			elapsed := now.Sub(c.Timestamp).Milliseconds()
			if elapsed < 0 {
				elapsed = 0
			}

			raw += FromEvent(c, sess.Sharers) * math.Exp(-lambda*float64(elapsed))
		}
	}

	return math.Round(raw*toleranceScale*10) / 10
}
