// Package models defines the session journal data types.
package models

import "time"

// Consumption is one discrete intake record within a session. It is
// immutable once appended to its parent session.
type Consumption struct {
	Timestamp   time.Time `json:"timestamp"`
	WeightGrams float64   `json:"weight_grams"`
	THCPercent  float64   `json:"thc_percent"`
	Method      string    `json:"method"`
	Notes       string    `json:"notes,omitempty"`
}

// Coordinates is a one-shot location fix attached to a session when
// the user supplies one.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Session is one continuous period of activity, bounded by its start
// and end times, or ongoing while Active is set. EndTime is nil while
// the session is active and cleared again when a session is resumed.
type Session struct {
	ID           string        `json:"id"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      *time.Time    `json:"end_time,omitempty"`
	Active       bool          `json:"active"`
	Sharers      int           `json:"sharers,omitempty"`
	Environment  string        `json:"environment,omitempty"`
	Social       string        `json:"social,omitempty"`
	UserState    string        `json:"user_state,omitempty"`
	Supplements  []string      `json:"supplements,omitempty"`
	Effects      []string      `json:"effects,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Geo          *Coordinates  `json:"geo,omitempty"`
	Consumptions []Consumption `json:"consumptions"`
}

// Ended reports whether the session has a recorded end time.
func (s *Session) Ended() bool {
	return s.EndTime != nil
}

// ElapsedAt returns how long the session has been running at time t,
// using the end time for ended sessions.
func (s *Session) ElapsedAt(t time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}

	return t.Sub(s.StartTime)
}
