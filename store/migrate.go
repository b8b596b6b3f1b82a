package store

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
)

// migrateSnapshot rewrites a legacy bare-array snapshot in the
// current wrapped form. Wrapped and malformed values are left alone;
// the malformed case is handled at load time instead.
func migrateSnapshot(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(journalBucket))

	data := bucket.Get([]byte(snapshotKey))
	if len(data) == 0 {
		return nil
	}

	var sessions []models.Session

	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil
	}

	value, err := journal.EncodeSnapshot(time.Now(), sessions)
	if err != nil {
		return err
	}

	return bucket.Put([]byte(snapshotKey), value)
}
