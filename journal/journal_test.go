package journal_test

import (
	"testing"
	"time"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
)

var base = time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)

func TestStartCreatesActiveSession(t *testing.T) {
	j := journal.New(nil)

	sess := j.Start(base, journal.StartOptions{
		WeightGrams: 1,
		THCPercent:  20,
		Method:      "joint",
		Sharers:     1,
	})

	if !sess.Active {
		t.Error("new session must be active")
	}

	if sess.ID == "" {
		t.Error("new session must have an id")
	}

	if len(sess.Consumptions) != 1 {
		t.Fatalf("expected 1 initial consumption, got %d", len(sess.Consumptions))
	}

	if !sess.Consumptions[0].Timestamp.Equal(base) {
		t.Error("initial consumption must carry the start time")
	}

	active, ok := j.Active()
	if !ok || active.ID != sess.ID {
		t.Error("journal must reference the new session as active")
	}
}

func TestStartWithoutWeightRecordsNoConsumption(t *testing.T) {
	j := journal.New(nil)

	sess := j.Start(base, journal.StartOptions{Sharers: 2})

	if len(sess.Consumptions) != 0 {
		t.Errorf("expected no consumptions, got %d", len(sess.Consumptions))
	}
}

func TestStartEndsPreviousActiveSession(t *testing.T) {
	j := journal.New(nil)

	first := j.Start(base, journal.StartOptions{})
	second := j.Start(base.Add(time.Hour), journal.StartOptions{})

	var activeCount int

	for _, s := range j.Sessions() {
		if s.Active {
			activeCount++
		}
	}

	if activeCount != 1 {
		t.Fatalf("expected exactly one active session, got %d", activeCount)
	}

	got, _ := j.Get(first.ID)
	if got.Active || got.EndTime == nil {
		t.Error("first session must be ended when a new one starts")
	}

	active, _ := j.Active()
	if active.ID != second.ID {
		t.Error("second session must be the active one")
	}
}

func TestBackdatedStartKeepsSortOrder(t *testing.T) {
	j := journal.New(nil)

	j.Start(base, journal.StartOptions{})
	j.Start(base.Add(-2*time.Hour), journal.StartOptions{})

	sessions := j.Sessions()

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	if !sessions[0].StartTime.Before(sessions[1].StartTime) {
		t.Error("sessions must be sorted by start time ascending")
	}
}

func TestBackdatedStartClampsPreviousEnd(t *testing.T) {
	j := journal.New(nil)

	first := j.Start(base, journal.StartOptions{})
	j.Start(base.Add(-2*time.Hour), journal.StartOptions{})

	got, _ := j.Get(first.ID)

	if got.EndTime == nil {
		t.Fatal("previous session must be ended")
	}

	if got.EndTime.Before(got.StartTime) {
		t.Errorf(
			"previous session ends at %v, before its start %v",
			got.EndTime, got.StartTime,
		)
	}

	if got.ElapsedAt(base) < 0 {
		t.Error("previous session must not have a negative duration")
	}
}

func TestAddConsumptionWithoutActiveSessionIsNoop(t *testing.T) {
	j := journal.New(nil)

	ok := j.AddConsumption(base, models.Consumption{WeightGrams: 1})
	if ok {
		t.Error("AddConsumption must report false with no active session")
	}

	if j.Len() != 0 {
		t.Error("nothing may be recorded with no active session")
	}
}

func TestAddConsumptionDefaultsTimestamp(t *testing.T) {
	j := journal.New(nil)
	j.Start(base, journal.StartOptions{})

	now := base.Add(30 * time.Minute)

	if !j.AddConsumption(now, models.Consumption{WeightGrams: 0.5, THCPercent: 18}) {
		t.Fatal("AddConsumption must succeed with an active session")
	}

	active, _ := j.Active()
	if len(active.Consumptions) != 1 {
		t.Fatalf("expected 1 consumption, got %d", len(active.Consumptions))
	}

	if !active.Consumptions[0].Timestamp.Equal(now) {
		t.Error("zero timestamp must be replaced with now")
	}
}

func TestUpdateContextReplacesFieldsWholesale(t *testing.T) {
	j := journal.New(nil)
	j.Start(base, journal.StartOptions{
		WeightGrams: 1,
		THCPercent:  20,
		Environment: "home",
	})

	ok := j.UpdateContext(journal.ContextUpdate{
		Social:      "friends",
		Supplements: []string{"coffee"},
		Effects:     []string{"relaxed", "sleepy"},
	})
	if !ok {
		t.Fatal("UpdateContext must succeed with an active session")
	}

	active, _ := j.Active()

	if active.Environment != "" {
		t.Error("fields absent from the update must be cleared")
	}

	if active.Social != "friends" || len(active.Effects) != 2 {
		t.Error("updated fields not applied")
	}

	if len(active.Consumptions) != 1 {
		t.Error("consumptions must be untouched by a context update")
	}
}

func TestUpdateContextWithoutActiveSessionIsNoop(t *testing.T) {
	j := journal.New(nil)

	if j.UpdateContext(journal.ContextUpdate{Social: "alone"}) {
		t.Error("UpdateContext must report false with no active session")
	}
}

func TestEndAndResume(t *testing.T) {
	j := journal.New(nil)
	sess := j.Start(base, journal.StartOptions{})

	endAt := base.Add(time.Hour)

	if !j.End(endAt) {
		t.Fatal("End must succeed with an active session")
	}

	ended, _ := j.Get(sess.ID)
	if ended.Active {
		t.Error("ended session must not be active")
	}

	if ended.EndTime == nil || !ended.EndTime.Equal(endAt) {
		t.Error("End must record the end time")
	}

	if j.End(endAt.Add(time.Minute)) {
		t.Error("End must report false when nothing is active")
	}

	if !j.Resume(endAt.Add(time.Hour), sess.ID) {
		t.Fatal("Resume must succeed for a known id")
	}

	resumed, _ := j.Get(sess.ID)
	if !resumed.Active || resumed.EndTime != nil {
		t.Error("Resume must reactivate the session and clear its end time")
	}
}

func TestResumeEndsOtherActiveSession(t *testing.T) {
	j := journal.New(nil)

	first := j.Start(base, journal.StartOptions{})
	j.End(base.Add(time.Hour))

	second := j.Start(base.Add(2*time.Hour), journal.StartOptions{})

	if !j.Resume(base.Add(3*time.Hour), first.ID) {
		t.Fatal("Resume failed")
	}

	var activeCount int

	for _, s := range j.Sessions() {
		if s.Active {
			activeCount++
		}
	}

	if activeCount != 1 {
		t.Fatalf("expected exactly one active session, got %d", activeCount)
	}

	got, _ := j.Get(second.ID)
	if got.Active {
		t.Error("previously active session must be ended by Resume")
	}
}

func TestResumeUnknownID(t *testing.T) {
	j := journal.New(nil)
	j.Start(base, journal.StartOptions{})

	if j.Resume(base.Add(time.Hour), "missing") {
		t.Error("Resume must report false for an unknown id")
	}

	if _, ok := j.Active(); !ok {
		t.Error("a failed resume must not disturb the active session")
	}
}

func TestDeleteSession(t *testing.T) {
	j := journal.New(nil)
	sess := j.Start(base, journal.StartOptions{})

	if !j.Delete(sess.ID) {
		t.Fatal("Delete must succeed for a known id")
	}

	if j.Len() != 0 {
		t.Error("session must be removed")
	}

	if _, ok := j.Active(); ok {
		t.Error("deleting the active session must clear the active reference")
	}

	if j.Delete(sess.ID) {
		t.Error("Delete must report false for an unknown id")
	}
}

func TestNewAdoptsSingleActiveSession(t *testing.T) {
	end := base.Add(time.Hour)

	sessions := []models.Session{
		{ID: "a", StartTime: base, Active: true},
		{ID: "b", StartTime: base.Add(2 * time.Hour), Active: true},
		{ID: "c", StartTime: end, EndTime: &end},
	}

	j := journal.New(sessions)

	active, ok := j.Active()
	if !ok {
		t.Fatal("expected an active session")
	}

	if active.ID != "b" {
		t.Errorf("most recently started active session must win, got %s", active.ID)
	}

	var activeCount int

	for _, s := range j.Sessions() {
		if s.Active {
			activeCount++
		}
	}

	if activeCount != 1 {
		t.Errorf("expected exactly one active session, got %d", activeCount)
	}
}

func TestIntervalSincePrevious(t *testing.T) {
	j := journal.New(nil)

	j.Start(base, journal.StartOptions{WeightGrams: 1, THCPercent: 20})
	j.End(base.Add(30 * time.Minute))

	// Started exactly one hour after the previous session ended.
	j.Start(base.Add(90*time.Minute), journal.StartOptions{})

	if _, ok := j.IntervalSincePrevious(0); ok {
		t.Error("the first session has no previous interval")
	}

	if _, ok := j.IntervalSincePrevious(5); ok {
		t.Error("out-of-range index has no interval")
	}

	gap, ok := j.IntervalSincePrevious(1)
	if !ok {
		t.Fatal("expected an interval for index 1")
	}

	if gap != time.Hour {
		t.Errorf("got %v, want %v", gap, time.Hour)
	}
}

func TestIntervalFallsBackToPreviousStart(t *testing.T) {
	// The previous session never ended, so the gap is measured from
	// its start.
	sessions := []models.Session{
		{ID: "a", StartTime: base},
		{ID: "b", StartTime: base.Add(2 * time.Hour)},
	}

	j := journal.New(sessions)

	gap, ok := j.IntervalSincePrevious(1)
	if !ok || gap != 2*time.Hour {
		t.Errorf("got %v (%v), want 2h", gap, ok)
	}
}
