package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/sesh-cli/sesh/dose"
	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/internal/timeutil"
	"github.com/sesh-cli/sesh/internal/ui"
	"github.com/sesh-cli/sesh/journal"
)

// TwentyFourHour switches the session tables to a 24-hour clock.
var TwentyFourHour bool

func dateFormat() string {
	if TwentyFourHour {
		return "Jan 02, 2006 15:04"
	}

	return "Jan 02, 2006 03:04 PM"
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []models.Session) {
	j := journal.New(sessions)
	ordered := j.Sessions()

	tableBody := make([][]string, len(ordered))

	for i := range ordered {
		sess := ordered[i]

		statusText := ui.Green("ended")
		if sess.Active {
			statusText = ui.Cyan("active")
		}

		endDate := ""
		if sess.EndTime != nil {
			endDate = sess.EndTime.Format(dateFormat())
		}

		gap := ""
		if interval, ok := j.IntervalSincePrevious(i); ok {
			gap = timeutil.FormatDuration(interval)
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format(dateFormat()),
			endDate,
			fmt.Sprintf("%.3fg", dose.SessionTotal(&sess)),
			fmt.Sprintf("%d", len(sess.Consumptions)),
			gap,
			strings.Join(sess.Effects, " · "),
			statusText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "STARTED", "ENDED", "DOSE", "EVENTS", "GAP", "EFFECTS", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// List prints out a table of all the sessions that were created
// within the specified time range.
func List(w io.Writer, sessions []models.Session) {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	printSessionsTable(w, sessions)
}
