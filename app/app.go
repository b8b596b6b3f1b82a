// Package app defines the command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/sesh-cli/sesh/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the sesh app instance.
func Get() *cli.App {
	seshApp := &cli.App{
		Name: "sesh",
		Usage: `
		Sesh is a consumption session journal for the command-line. It records
		sessions and their intake events, and reports dose and tolerance
		analytics over your history.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Record a consumption event in the active session",
				Action: addAction,
				Flags: []cli.Flag{
					weightFlag,
					thcFlag,
					methodFlag,
					notesFlag,
				},
			},
			{
				Name:   "update",
				Usage:  "Replace the context fields of the active session",
				Action: updateAction,
				Flags: []cli.Flag{
					environmentFlag,
					socialFlag,
					stateFlag,
					supplementFlag,
					effectFlag,
					notesFlag,
				},
			},
			{
				Name:   "end",
				Usage:  "End the active session",
				Action: endAction,
			},
			{
				Name:      "resume",
				Usage:     "Reactivate a previously ended session",
				ArgsUsage: "[SESSION_ID]",
				Action:    resumeAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the active session",
				Action: statusAction,
			},
			{
				Name:   "list",
				Usage:  "List the sessions started within a time period",
				Action: listAction,
				Flags: []cli.Flag{
					periodFlag,
					startTimeFlag,
					endTimeFlag,
					effectFlag,
					jsonFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete the sessions started within a time period",
				Action: deleteAction,
				Flags: []cli.Flag{
					periodFlag,
					startTimeFlag,
					endTimeFlag,
					effectFlag,
				},
			},
			{
				Name: "stats",
				Usage: `
				Track your habits with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					startTimeFlag,
					endTimeFlag,
					effectFlag,
					jsonFlag,
				},
			},
			{
				Name:   "tolerance",
				Usage:  "Print the tolerance score for the full journal",
				Action: toleranceAction,
				Flags: []cli.Flag{
					atFlag,
				},
			},
			{
				Name:   "export",
				Usage:  "Write the full journal to a JSON document",
				Action: exportAction,
				Flags: []cli.Flag{
					outputFlag,
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			weightFlag,
			thcFlag,
			methodFlag,
			sharersFlag,
			environmentFlag,
			socialFlag,
			stateFlag,
			sinceFlag,
			locationFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return seshApp
}
