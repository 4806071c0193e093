package tui

import (
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/stopwatch"
)

// tickMsg is one stopwatch tick. Tag identifies the timer that scheduled it.
type tickMsg struct {
	tag int
}

// LocationResolvedMsg carries coordinates for the entry captured in Lookup.
type LocationResolvedMsg struct {
	Lookup    stopwatch.Lookup
	Latitude  string
	Longitude string
}

// LocationFailedMsg signals a denied or failed lookup for an entry.
type LocationFailedMsg struct {
	Lookup stopwatch.Lookup
}

// SettingsChangedMsg carries settings reloaded from disk.
type SettingsChangedMsg struct {
	Settings *models.Settings
}

// SettingsSavedMsg signals the settings form was written to disk.
type SettingsSavedMsg struct {
	Settings *models.Settings
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
