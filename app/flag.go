package app

import "github.com/urfave/cli/v2"

var (
	weightFlag = &cli.Float64Flag{
		Name:    "weight",
		Aliases: []string{"w"},
		Usage:   "Weight of material consumed, in grams",
	}

	thcFlag = &cli.Float64Flag{
		Name:  "thc",
		Usage: "THC percentage of the material (0-100). Defaults to the configured value",
	}

	methodFlag = &cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Usage:   "Consumption method (e.g. joint, vape, edible)",
	}

	sharersFlag = &cli.IntFlag{
		Name:    "sharers",
		Aliases: []string{"n"},
		Usage:   "Number of people sharing the session. Defaults to 1",
	}

	environmentFlag = &cli.StringFlag{
		Name:  "environment",
		Usage: "Where the session takes place (e.g. home, park)",
	}

	socialFlag = &cli.StringFlag{
		Name:  "social",
		Usage: "Social setting of the session (e.g. alone, friends)",
	}

	stateFlag = &cli.StringFlag{
		Name:  "state",
		Usage: "Your state going into the session (e.g. rested, stressed)",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start the session in the past (e.g. '20 mins ago')",
	}

	locationFlag = &cli.StringFlag{
		Name:  "location",
		Usage: "Attach a location to the session as 'lat,lon'",
	}

	notesFlag = &cli.StringFlag{
		Name:  "notes",
		Usage: "Free-form notes",
	}

	supplementFlag = &cli.StringFlag{
		Name:  "supplement",
		Usage: "Comma-delimited supplements taken alongside (e.g. coffee,melatonin)",
	}

	effectFlag = &cli.StringFlag{
		Name:  "effect",
		Usage: "Comma-delimited effects experienced (e.g. relaxed,sleepy)",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "The time period: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, or all-time",
	}

	startTimeFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "The start of the reporting period (e.g. 2024-06-01)",
	}

	endTimeFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "The end of the reporting period (e.g. 2024-06-30)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path of the export file",
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "Compute the tolerance score at the given time instead of now",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
