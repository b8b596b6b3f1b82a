// Package journal maintains the in-memory session collection and its
// lifecycle invariants. The collection is kept sorted by start time
// ascending, and at most one session is active at a time: the current
// session is an explicit reference held by the journal, not a scan
// for an active flag.
package journal

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sesh-cli/sesh/internal/models"
)

// Journal is the ordered collection of sessions. Mutating operations
// are total: when they cannot apply (no active session, unknown id)
// they report false instead of failing.
type Journal struct {
	sessions []models.Session
	activeID string
}

// StartOptions carries the initial attributes of a new session. A
// consumption event is recorded immediately when WeightGrams is
// greater than zero.
type StartOptions struct {
	WeightGrams float64
	THCPercent  float64
	Method      string
	Sharers     int
	Environment string
	Social      string
	UserState   string
	Geo         *models.Coordinates
}

// ContextUpdate replaces the mutable descriptive fields of the active
// session wholesale. Consumptions and identity are untouched.
type ContextUpdate struct {
	Environment string
	Social      string
	UserState   string
	Supplements []string
	Effects     []string
	Notes       string
}

// New builds a journal from previously loaded sessions. Sessions are
// re-sorted by start time, and if the loaded data carries more than
// one active session (possible in snapshots written before the
// single-active invariant was enforced), only the most recently
// started one stays active.
func New(sessions []models.Session) *Journal {
	j := &Journal{sessions: slices.Clone(sessions)}

	j.sort()

	for i := len(j.sessions) - 1; i >= 0; i-- {
		if !j.sessions[i].Active {
			continue
		}

		if j.activeID == "" {
			j.activeID = j.sessions[i].ID
		} else {
			j.sessions[i].Active = false
		}
	}

	return j
}

func (j *Journal) sort() {
	slices.SortStableFunc(j.sessions, func(a, b models.Session) int {
		return a.StartTime.Compare(b.StartTime)
	})
}

func (j *Journal) active() *models.Session {
	if j.activeID == "" {
		return nil
	}

	for i := range j.sessions {
		if j.sessions[i].ID == j.activeID {
			return &j.sessions[i]
		}
	}

	return nil
}

// Len returns the number of sessions in the journal.
func (j *Journal) Len() int {
	return len(j.sessions)
}

// Sessions returns a copy of the collection in start-time order.
func (j *Journal) Sessions() []models.Session {
	return slices.Clone(j.sessions)
}

// Get returns the session with the given id.
func (j *Journal) Get(id string) (models.Session, bool) {
	for i := range j.sessions {
		if j.sessions[i].ID == id {
			return j.sessions[i], true
		}
	}

	return models.Session{}, false
}

// Active returns the currently active session.
func (j *Journal) Active() (models.Session, bool) {
	sess := j.active()
	if sess == nil {
		return models.Session{}, false
	}

	return *sess, true
}

// Start creates a new session beginning at now and makes it the
// active session. An already active session is ended first so that
// the single-active invariant holds structurally. The collection is
// re-sorted afterwards since now may be in the past.
func (j *Journal) Start(now time.Time, opts StartOptions) models.Session {
	// A backdated start must not push the previous session's end
	// before its own beginning.
	if prev := j.active(); prev != nil {
		endAt := now
		if endAt.Before(prev.StartTime) {
			endAt = prev.StartTime
		}

		j.End(endAt)
	}

	sess := models.Session{
		ID:          uuid.NewString(),
		StartTime:   now,
		Active:      true,
		Sharers:     opts.Sharers,
		Environment: opts.Environment,
		Social:      opts.Social,
		UserState:   opts.UserState,
		Geo:         opts.Geo,
	}

	if opts.WeightGrams > 0 {
		sess.Consumptions = append(sess.Consumptions, models.Consumption{
			Timestamp:   now,
			WeightGrams: opts.WeightGrams,
			THCPercent:  opts.THCPercent,
			Method:      opts.Method,
		})
	}

	j.sessions = append(j.sessions, sess)
	j.sort()
	j.activeID = sess.ID

	return sess
}

// AddConsumption appends an event to the active session's list. It
// reports false, without recording anything, when no session is
// active. A zero event timestamp is replaced with now.
func (j *Journal) AddConsumption(now time.Time, c models.Consumption) bool {
	sess := j.active()
	if sess == nil {
		return false
	}

	if c.Timestamp.IsZero() {
		c.Timestamp = now
	}

	sess.Consumptions = append(sess.Consumptions, c)

	return true
}

// UpdateContext replaces the descriptive fields of the active
// session. It reports false when no session is active.
func (j *Journal) UpdateContext(u ContextUpdate) bool {
	sess := j.active()
	if sess == nil {
		return false
	}

	sess.Environment = u.Environment
	sess.Social = u.Social
	sess.UserState = u.UserState
	sess.Supplements = u.Supplements
	sess.Effects = u.Effects
	sess.Notes = u.Notes

	return true
}

// End terminates the active session at now. It reports false when no
// session is active.
func (j *Journal) End(now time.Time) bool {
	sess := j.active()
	if sess == nil {
		return false
	}

	end := now
	sess.EndTime = &end
	sess.Active = false
	j.activeID = ""

	return true
}

// Resume reactivates the session with the given id, clearing its end
// time regardless of when it ended. An active session, if any, is
// ended first. The collection order is unchanged.
func (j *Journal) Resume(now time.Time, id string) bool {
	var target *models.Session

	for i := range j.sessions {
		if j.sessions[i].ID == id {
			target = &j.sessions[i]
			break
		}
	}

	if target == nil {
		return false
	}

	if j.activeID != id {
		j.End(now)
	}

	target.Active = true
	target.EndTime = nil
	j.activeID = id

	return true
}

// Delete removes the session with the given id. The caller is
// expected to have confirmed intent already.
func (j *Journal) Delete(id string) bool {
	for i := range j.sessions {
		if j.sessions[i].ID == id {
			j.sessions = slices.Delete(j.sessions, i, i+1)

			if j.activeID == id {
				j.activeID = ""
			}

			return true
		}
	}

	return false
}

// IntervalSincePrevious returns the gap between session i's start and
// the previous session's end, or its start when it never ended, in
// the collection's sort order. There is no interval for the first
// session or for an out-of-range index.
func (j *Journal) IntervalSincePrevious(i int) (time.Duration, bool) {
	if i <= 0 || i >= len(j.sessions) {
		return 0, false
	}

	prev := j.sessions[i-1]

	boundary := prev.StartTime
	if prev.EndTime != nil {
		boundary = *prev.EndTime
	}

	return j.sessions[i].StartTime.Sub(boundary), true
}
