package config

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/models"
)

// LoadSettings loads the global settings from ~/.racewatch/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to ~/.racewatch/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// HistoryPath resolves where the history store lives for the given settings.
func HistoryPath(settings *models.Settings) (string, error) {
	if settings.Storage.Path != "" {
		return settings.Storage.Path, nil
	}
	return GlobalHistoryFile()
}

// Setting keys accepted by ApplySetting.
const (
	SettingProvider  = "locator.provider"
	SettingEndpoint  = "locator.endpoint"
	SettingTimeout   = "locator.timeout"
	SettingLatitude  = "locator.latitude"
	SettingLongitude = "locator.longitude"
	SettingStorage   = "storage.enabled"
	SettingLogLevel  = "logging.level"
)

// ApplySetting validates value and stores it under key in a copy of
// settings.
func ApplySetting(settings *models.Settings, key, value string) (*models.Settings, error) {
	next := *settings
	switch key {
	case SettingProvider:
		switch value {
		case models.LocatorIPAPI, models.LocatorStatic, models.LocatorNone:
			next.Locator.Provider = value
		default:
			return nil, fmt.Errorf("locator must be %s, %s or %s", models.LocatorIPAPI, models.LocatorStatic, models.LocatorNone)
		}
	case SettingEndpoint:
		next.Locator.Endpoint = value
	case SettingTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid timeout %q", value)
		}
		next.Locator.Timeout = d
	case SettingLatitude:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < -90 || v > 90 {
			return nil, fmt.Errorf("invalid latitude %q", value)
		}
		next.Locator.Latitude = v
	case SettingLongitude:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < -180 || v > 180 {
			return nil, fmt.Errorf("invalid longitude %q", value)
		}
		next.Locator.Longitude = v
	case SettingStorage:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid storage flag %q", value)
		}
		next.Storage.Enabled = b
	case SettingLogLevel:
		if _, err := log.ParseLevel(value); err != nil {
			return nil, fmt.Errorf("invalid log level %q", value)
		}
		next.Logging.Level = value
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return &next, nil
}
