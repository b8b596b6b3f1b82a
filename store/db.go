package store

import (
	"time"

	"github.com/sesh-cli/sesh/internal/models"
)

// DB is the journal storage interface.
type DB interface {
	// LoadSessions returns every persisted session. Malformed
	// persisted state loads as an empty list; only IO failures are
	// reported as errors.
	LoadSessions() ([]models.Session, error)
	// SaveSessions overwrites the persisted snapshot with the full
	// session collection.
	SaveSessions(now time.Time, sessions []models.Session) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
