// Package dose implements the dose and tolerance models. Both are
// pure functions over the journal data: every input is clamped or
// defaulted rather than rejected, so there is no error pathway.
package dose

import (
	"github.com/sesh-cli/sesh/internal/models"
)

// FromEvent converts one consumption event into the THC-equivalent
// mass in grams attributed to one person. The THC percentage is
// clamped to [0, 100], negative weights count as zero, and sharer
// counts below one are treated as one.
func FromEvent(c models.Consumption, sharers int) float64 {
	weight := c.WeightGrams
	if weight < 0 {
		weight = 0
	}

	pct := c.THCPercent
	if pct < 0 {
		pct = 0
	}

	if pct > 100 {
		pct = 100
	}

	if sharers < 1 {
		sharers = 1
	}

	return weight * (pct / 100) / float64(sharers)
}

// SessionTotal sums the per-event doses of a session. The sharer
// count is a session-level attribute and applies to every event.
func SessionTotal(s *models.Session) float64 {
	var total float64

	for _, c := range s.Consumptions {
		total += FromEvent(c, s.Sharers)
	}

	return total
}
