package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sesh-cli/sesh/config"
	"github.com/sesh-cli/sesh/dose"
	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/internal/timeutil"
	"github.com/sesh-cli/sesh/internal/ui"
	"github.com/sesh-cli/sesh/journal"
	"github.com/sesh-cli/sesh/report"
	"github.com/sesh-cli/sesh/stats"
	"github.com/sesh-cli/sesh/store"
)

const (
	envNoColor     = "NO_COLOR"
	envSeshNoColor = "SESH_NO_COLOR"
)

var errInvalidLocation = errors.New(
	"the location must be specified as 'lat,lon'",
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// journalHelper loads the persisted journal and hands back the store
// for the follow-up save.
func journalHelper() (*journal.Journal, store.DB, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	sessions, err := db.LoadSessions()
	if err != nil {
		return nil, nil, err
	}

	return journal.New(sessions), db, nil
}

// persist writes the journal back to the store and closes it.
func persist(db store.DB, j *journal.Journal) error {
	defer db.Close()

	return db.SaveSessions(time.Now(), j.Sessions())
}

// parseLocation reads a 'lat,lon' pair.
func parseLocation(s string) (*models.Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errInvalidLocation
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errInvalidLocation
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errInvalidLocation
	}

	return &models.Coordinates{Lat: lat, Lon: lon}, nil
}

// notify sends a desktop notification when they are enabled.
func notify(title, msg string) {
	if !config.Get().NotificationsEnabled {
		return
	}

	if err := beeep.Notify(title, msg, ""); err != nil {
		slog.Error("failed to send notification", slog.Any("error", err))
	}
}

// runSessionCmd executes the configured post-session command.
func runSessionCmd(sessionCmd string) error {
	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session command: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// defaultAction starts a new session from the command-line flags.
func defaultAction(ctx *cli.Context) error {
	settings := config.Get()

	now := time.Now()

	if ctx.String("since") != "" {
		startTime, err := timeutil.FromStr(ctx.String("since"))
		if err != nil {
			return fmt.Errorf("invalid since time: %w", err)
		}

		now = startTime
	}

	opts := journal.StartOptions{
		WeightGrams: ctx.Float64("weight"),
		THCPercent:  settings.DefaultTHCPercent,
		Method:      firstNonEmptyString(ctx.String("method"), settings.DefaultMethod),
		Sharers:     settings.DefaultSharers,
		Environment: ctx.String("environment"),
		Social:      ctx.String("social"),
		UserState:   ctx.String("state"),
	}

	if ctx.IsSet("thc") {
		opts.THCPercent = ctx.Float64("thc")
	}

	if ctx.IsSet("sharers") {
		opts.Sharers = ctx.Int("sharers")
	}

	if ctx.String("location") != "" {
		geo, err := parseLocation(ctx.String("location"))
		if err != nil {
			return err
		}

		opts.Geo = geo
	}

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	sess := j.Start(now, opts)

	if err := persist(db, j); err != nil {
		return err
	}

	report.SessionStarted(&sess)

	return nil
}

// addAction records a consumption event in the active session.
func addAction(ctx *cli.Context) error {
	settings := config.Get()

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	event := models.Consumption{
		WeightGrams: ctx.Float64("weight"),
		THCPercent:  settings.DefaultTHCPercent,
		Method:      firstNonEmptyString(ctx.String("method"), settings.DefaultMethod),
		Notes:       ctx.String("notes"),
	}

	if ctx.IsSet("thc") {
		event.THCPercent = ctx.Float64("thc")
	}

	if !j.AddConsumption(time.Now(), event) {
		db.Close()
		report.NoActiveSession()

		return nil
	}

	if err := persist(db, j); err != nil {
		return err
	}

	active, _ := j.Active()

	report.ConsumptionAdded(dose.FromEvent(event, active.Sharers))

	return nil
}

// updateAction replaces the context fields of the active session.
func updateAction(ctx *cli.Context) error {
	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	update := journal.ContextUpdate{
		Environment: ctx.String("environment"),
		Social:      ctx.String("social"),
		UserState:   ctx.String("state"),
		Notes:       ctx.String("notes"),
	}

	if ctx.String("supplement") != "" {
		update.Supplements = splitAndTrim(ctx.String("supplement"))
	}

	if ctx.String("effect") != "" {
		update.Effects = splitAndTrim(ctx.String("effect"))
	}

	if !j.UpdateContext(update) {
		db.Close()
		report.NoActiveSession()

		return nil
	}

	if err := persist(db, j); err != nil {
		return err
	}

	report.ContextUpdated()

	return nil
}

// endAction ends the active session.
func endAction(_ *cli.Context) error {
	settings := config.Get()

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	active, ok := j.Active()
	if !ok {
		db.Close()
		report.NoActiveSession()

		return nil
	}

	j.End(time.Now())

	if err := persist(db, j); err != nil {
		return err
	}

	ended, _ := j.Get(active.ID)
	grams := dose.SessionTotal(&ended)

	report.SessionEnded(&ended, grams)

	notify("Session ended", fmt.Sprintf("Total dose: %.3fg", grams))

	if settings.SessionCmd != "" {
		return runSessionCmd(settings.SessionCmd)
	}

	return nil
}

// resumeAction reactivates a previously ended session. With no
// argument, the user picks one from a table of recent sessions.
func resumeAction(ctx *cli.Context) error {
	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	id := ctx.Args().First()

	if id == "" {
		id, err = selectEndedSession(j)
		if err != nil {
			db.Close()
			return err
		}
	}

	if !j.Resume(time.Now(), id) {
		db.Close()
		return fmt.Errorf("session not found: %s", id)
	}

	if err := persist(db, j); err != nil {
		return err
	}

	sess, _ := j.Get(id)

	report.SessionResumed(&sess)

	return nil
}

// statusAction prints the status of the active session.
func statusAction(_ *cli.Context) error {
	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now()

	active, ok := j.Active()
	if !ok {
		report.NoActiveSession()
		return nil
	}

	elapsed := timeutil.FormatDuration(active.ElapsedAt(now))

	pterm.Printfln("Session %s", ui.Highlight(active.ID))
	pterm.Printfln("Started: %s (%s ago)", active.StartTime.Format(time.Kitchen), elapsed)
	pterm.Printfln("Events: %d", len(active.Consumptions))
	pterm.Printfln("Dose so far: %.3fg", dose.SessionTotal(&active))
	pterm.Printfln("Tolerance: %.1f units", dose.Tolerance(now, j.Sessions()))

	return nil
}

// listAction prints a table of the sessions started within a time
// period.
func listAction(ctx *cli.Context) error {
	conf := config.Filter(ctx)

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	s := &stats.Stats{
		Opts: stats.Opts{FilterConfig: *conf},
	}

	s.Compute(j.Sessions())

	if ctx.Bool("json") {
		b, err := json.Marshal(s.Sessions)
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	stats.List(config.Stdout, s.Sessions)

	return nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	conf := config.Filter(ctx)

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	s := &stats.Stats{
		Opts: stats.Opts{FilterConfig: *conf},
	}

	s.Compute(j.Sessions())

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	s.Show()

	return nil
}

// toleranceAction prints the tolerance score over the full journal.
func toleranceAction(ctx *cli.Context) error {
	at := time.Now()

	if ctx.String("at") != "" {
		parsed, err := timeutil.FromStr(ctx.String("at"))
		if err != nil {
			return fmt.Errorf("invalid time: %w", err)
		}

		at = parsed
	}

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	report.Tolerance(dose.Tolerance(at, j.Sessions()))

	return nil
}

// exportAction writes the full journal to a JSON document.
func exportAction(ctx *cli.Context) error {
	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now()

	path := ctx.String("output")
	if path == "" {
		path = fmt.Sprintf("sesh-export-%s.json", now.Format("2006-01-02"))
	}

	data, err := journal.EncodeExport(now, j.Sessions())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	report.Exported(path)

	return nil
}

// deleteAction deletes the sessions started within a time period
// after confirmation.
func deleteAction(ctx *cli.Context) error {
	conf := config.Filter(ctx)

	j, db, err := journalHelper()
	if err != nil {
		return err
	}

	s := &stats.Stats{
		Opts: stats.Opts{FilterConfig: *conf},
	}

	s.Compute(j.Sessions())

	return delSessions(db, j, s.Sessions)
}

// editConfigAction opens the sesh config file in the user's default
// text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func splitAndTrim(s string) []string {
	split := strings.Split(s, ",")

	trimmed := make([]string, len(split))

	for i, v := range split {
		trimmed[i] = strings.TrimSpace(v)
	}

	return trimmed
}

func initLogging() {
	writer := &lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    5,
		MaxBackups: 3,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(writer, nil)))
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	config.InitializePaths()

	initLogging()

	settings := config.Get()

	ui.DarkTheme = settings.DarkTheme
	stats.TwentyFourHour = settings.TwentyFourHour

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SESH_NO_COLOR is set
	if _, exists := os.LookupEnv(envSeshNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting sesh")

	return nil
}
