// Package store connects to the data store and persists the session
// journal. The journal's full state is serialised as one JSON
// snapshot document kept under a fixed key, so every save is a
// wholesale replace and every load reads the complete history.
package store

import (
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
)

const (
	journalBucket = "journal"
	snapshotKey   = "snapshot"
)

var pathToDB string

var errSeshRunning = errors.New(
	"is sesh already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveSessions replaces the persisted snapshot with the given
// sessions.
func (c *Client) SaveSessions(
	now time.Time,
	sessions []models.Session,
) error {
	value, err := journal.EncodeSnapshot(now, sessions)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(journalBucket)).Put([]byte(snapshotKey), value)
	})
}

// LoadSessions reads the persisted snapshot. A missing or malformed
// snapshot yields an empty list rather than an error.
func (c *Client) LoadSessions() ([]models.Session, error) {
	var sessions []models.Session

	err := c.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(journalBucket)).Get([]byte(snapshotKey))

		sessions = journal.DecodeSnapshot(data)

		return nil
	})

	return sessions, err
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// Open only fails with ErrTimeout when another process holds
		// the file lock.
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errSeshRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(journalBucket))
		if err != nil {
			return err
		}

		return migrateSnapshot(tx)
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
