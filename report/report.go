// Package report prints user-facing messages for journal operations.
package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/internal/timeutil"
)

const noActiveSessionMsg = "no active session; start one first"

func SessionStarted(sess *models.Session) {
	pterm.Success.Printfln("session started: %s", sess.ID)
}

func SessionEnded(sess *models.Session, grams float64) {
	duration := timeutil.FormatDuration(sess.ElapsedAt(*sess.EndTime))

	pterm.Success.Printfln(
		"session ended after %s (total dose: %.3fg)",
		duration,
		grams,
	)
}

func SessionResumed(sess *models.Session) {
	pterm.Success.Printfln("session resumed: %s", sess.ID)
}

func ConsumptionAdded(grams float64) {
	pterm.Success.Printfln("consumption recorded (dose: %.3fg)", grams)
}

func ContextUpdated() {
	pterm.Success.Println("session context updated")
}

func Exported(path string) {
	pterm.Success.Printfln("journal exported to %s", path)
}

func Tolerance(score float64) {
	fmt.Fprintf(os.Stdout, "%.1f\n", score)
}

// NoActiveSession reports the silent-ignore outcome of a mutating
// operation that needs an active session. It is informational, not an
// error.
func NoActiveSession() {
	pterm.Info.Println(noActiveSessionMsg)
}

func Error(err error) {
	pterm.Error.Println(err)
}
