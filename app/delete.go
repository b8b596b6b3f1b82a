package app

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
	"github.com/sesh-cli/sesh/stats"
	"github.com/sesh-cli/sesh/store"
)

// delSessions deletes all the specified sessions. It requests for
// confirmation before proceeding with the operation.
func delSessions(
	db store.DB,
	j *journal.Journal,
	sessions []models.Session,
) error {
	if len(sessions) == 0 {
		db.Close()
		return nil
	}

	stats.List(os.Stdout, sessions)

	warning := pterm.Warning.Sprint(
		"The above sessions will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(os.Stdout, warning)

	reader := bufio.NewReader(os.Stdin)

	_, _ = reader.ReadString('\n')

	for i := range sessions {
		j.Delete(sessions[i].ID)
	}

	return persist(db, j)
}
