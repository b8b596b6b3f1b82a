package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	bolt "go.etcd.io/bbolt"

	"github.com/sesh-cli/sesh/config"
	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
	"github.com/sesh-cli/sesh/store"
)

var base = time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) (*store.Client, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sesh.db")

	client, err := store.NewClient(dbPath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, dbPath
}

func testSessions() []models.Session {
	end := base.Add(time.Hour)

	return []models.Session{
		{
			ID:        "one",
			StartTime: base,
			EndTime:   &end,
			Sharers:   1,
			Effects:   []string{"relaxed"},
			Consumptions: []models.Consumption{
				{
					Timestamp:   base,
					WeightGrams: 1,
					THCPercent:  20,
					Method:      "vape",
				},
			},
		},
	}
}

func TestSaveAndLoadSessions(t *testing.T) {
	client, _ := newTestClient(t)

	want := testSessions()

	if err := client.SaveSessions(base, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := client.LoadSessions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSecondClientCannotOpenLockedStore(t *testing.T) {
	_, dbPath := newTestClient(t)

	_, err := store.NewClient(dbPath)
	if err == nil {
		t.Fatal("expected an error opening a store held by another client")
	}

	if !strings.Contains(err.Error(), "already running") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewClientOnFreshDataHome(t *testing.T) {
	// Registered before Setenv so the reload runs after the original
	// environment is restored.
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()

	config.InitializePaths()

	client, err := store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("opening store on a fresh data home: %v", err)
	}

	defer client.Close()

	if _, err := os.Stat(config.DBFilePath()); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

func TestLoadFromFreshStoreIsEmpty(t *testing.T) {
	client, _ := newTestClient(t)

	got, err := client.LoadSessions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty list, got %d sessions", len(got))
	}
}

func TestLoadMalformedSnapshotIsEmpty(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("journal")).Put([]byte("snapshot"), []byte("not json"))
	})
	if err != nil {
		t.Fatalf("seeding malformed value: %v", err)
	}

	got, err := client.LoadSessions()
	if err != nil {
		t.Fatalf("load must not fail on malformed state: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty list, got %d sessions", len(got))
	}
}

func TestLegacyBareArrayIsMigrated(t *testing.T) {
	client, dbPath := newTestClient(t)

	want := testSessions()

	legacy, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	err = client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("journal")).Put([]byte("snapshot"), legacy)
	})
	if err != nil {
		t.Fatalf("seeding legacy value: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs the migration.
	client, err = store.NewClient(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	defer client.Close()

	got, err := client.LoadSessions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("legacy load mismatch (-want +got):\n%s", diff)
	}

	// The stored value must now be in wrapped form.
	err = client.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte("journal")).Get([]byte("snapshot"))

		var snap journal.Snapshot

		if err := json.Unmarshal(data, &snap); err != nil {
			t.Errorf("migrated value does not parse as a snapshot: %v", err)
			return nil
		}

		if snap.Version != journal.SnapshotVersion {
			t.Errorf("migrated version: got %d, want %d", snap.Version, journal.SnapshotVersion)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
