// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global racewatch directory.
	GlobalDirName = ".racewatch"

	// HomeEnv overrides the global directory location.
	HomeEnv = "RACEWATCH_HOME"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	HistoryFileName  = "history.yaml"
	LogFileName      = "racewatch.log"
)

// homeOverride is set by the --home flag.
var homeOverride string

// SetHome overrides the global directory for the rest of the process.
func SetHome(dir string) {
	homeOverride = dir
}

// GlobalDir returns the path to the global racewatch directory (~/.racewatch/).
func GlobalDir() (string, error) {
	if homeOverride != "" {
		return homeOverride, nil
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalHistoryFile returns the default path of the history store.
func GlobalHistoryFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, HistoryFileName), nil
}

// GlobalLogFile returns the path to the diagnostic log file.
func GlobalLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// EnsureGlobalDir creates the global racewatch directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
