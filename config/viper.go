package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyDefaultMethod        = "defaults.method"
	keyDefaultTHCPercent    = "defaults.thc_percent"
	keyDefaultSharers       = "defaults.sharers"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyDarkTheme            = "display.dark_theme"
)

// Settings holds the user-configurable options read from the config
// file.
type Settings struct {
	DefaultMethod        string
	DefaultTHCPercent    float64
	DefaultSharers       int
	NotificationsEnabled bool
	SessionCmd           string
	TwentyFourHour       bool
	DarkTheme            bool
}

var settings *Settings

// Get loads the settings from the config file, writing a default
// config on first run.
func Get() *Settings {
	once.Do(func() {
		s, err := loadSettings(ConfigFilePath())
		if err != nil {
			pterm.Error.Printfln("%v: using default settings", err)

			settings = defaultSettings()

			return
		}

		settings = s
	})

	return settings
}

func defaultSettings() *Settings {
	return &Settings{
		DefaultMethod:        "joint",
		DefaultTHCPercent:    15,
		DefaultSharers:       1,
		NotificationsEnabled: true,
		DarkTheme:            true,
	}
}

func loadSettings(configPath string) (*Settings, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	def := defaultSettings()

	v.SetDefault(keyDefaultMethod, def.DefaultMethod)
	v.SetDefault(keyDefaultTHCPercent, def.DefaultTHCPercent)
	v.SetDefault(keyDefaultSharers, def.DefaultSharers)
	v.SetDefault(keyNotificationsEnabled, def.NotificationsEnabled)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, def.DarkTheme)

	err := v.ReadInConfig()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("writing default config failed: %w", err)
		}
	}

	return &Settings{
		DefaultMethod:        v.GetString(keyDefaultMethod),
		DefaultTHCPercent:    v.GetFloat64(keyDefaultTHCPercent),
		DefaultSharers:       v.GetInt(keyDefaultSharers),
		NotificationsEnabled: v.GetBool(keyNotificationsEnabled),
		SessionCmd:           v.GetString(keySessionCmd),
		TwentyFourHour:       v.GetBool(keyTwentyFourHour),
		DarkTheme:            v.GetBool(keyDarkTheme),
	}, nil
}
