package journal

import (
	"encoding/json"
	"time"

	"github.com/sesh-cli/sesh/internal/models"
)

// SnapshotVersion identifies the persisted snapshot format.
const SnapshotVersion = 1

// Snapshot is the persisted form of the whole journal: one JSON
// document holding every session.
type Snapshot struct {
	Sessions  []models.Session `json:"sessions"`
	CreatedAt time.Time        `json:"created_at"`
	Version   int              `json:"version"`
}

// Export is the on-demand export document. It is one-way: there is no
// import path.
type Export struct {
	Sessions   []models.Session `json:"sessions"`
	ExportedAt string           `json:"exported_at"`
	Version    int              `json:"version"`
}

// EncodeSnapshot serialises the sessions in wrapped snapshot form.
func EncodeSnapshot(now time.Time, sessions []models.Session) ([]byte, error) {
	return json.Marshal(Snapshot{
		Sessions:  sessions,
		CreatedAt: now,
		Version:   SnapshotVersion,
	})
}

// DecodeSnapshot reads a persisted snapshot. It accepts the wrapped
// form or a legacy bare session array; any other shape, or data that
// does not parse, yields an empty session list. Malformed state is
// recovered locally and never surfaced to the caller.
func DecodeSnapshot(data []byte) []models.Session {
	if len(data) == 0 {
		return nil
	}

	var snap Snapshot

	if err := json.Unmarshal(data, &snap); err == nil && snap.Sessions != nil {
		return snap.Sessions
	}

	var sessions []models.Session

	if err := json.Unmarshal(data, &sessions); err == nil {
		return sessions
	}

	return nil
}

// EncodeExport serialises the export document with an export
// timestamp in RFC 3339 form.
func EncodeExport(now time.Time, sessions []models.Session) ([]byte, error) {
	return json.MarshalIndent(Export{
		Sessions:   sessions,
		ExportedAt: now.Format(time.RFC3339),
		Version:    SnapshotVersion,
	}, "", "  ")
}
