// Package config is responsible for the application's configuration:
// file paths, user settings, and command-line filters.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.1.0"

var (
	configDir      = "sesh"
	configFileName = "config.yml"
	dbFileName     = "sesh.db"
	logFileName    = "sesh.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var once sync.Once

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the config, database, and log file paths
// through XDG. SESH_ENV switches to suffixed file names so tests and
// development builds never touch the real journal.
func InitializePaths() {
	seshEnv := strings.TrimSpace(os.Getenv("SESH_ENV"))
	if seshEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", seshEnv)
		dbFileName = fmt.Sprintf("sesh_%s.db", seshEnv)
		logFileName = fmt.Sprintf("sesh_%s.log", seshEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	// DataFile creates the data directory on the way, so the store can
	// open the database on a fresh machine.
	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath = filepath.Join(filepath.Dir(dbFilePath), "log", logFileName)
}
