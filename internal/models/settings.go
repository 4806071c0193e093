package models

import "time"

// Locator providers.
const (
	LocatorIPAPI  = "ip-api"
	LocatorStatic = "static"
	LocatorNone   = "none"
)

// LocatorConfig holds settings for the location lookup.
type LocatorConfig struct {
	Provider  string        `yaml:"provider"` // "ip-api" | "static" | "none"
	Endpoint  string        `yaml:"endpoint,omitempty"`
	Timeout   time.Duration `yaml:"timeout"`
	Latitude  float64       `yaml:"latitude,omitempty"`  // Only for provider=static
	Longitude float64       `yaml:"longitude,omitempty"` // Only for provider=static
}

// StorageConfig holds settings for the persistent history store.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // Empty means ~/.racewatch/history.yaml
}

// LoggingConfig holds diagnostic log settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // logrus level name
}

// Settings represents global application settings.
// This corresponds to ~/.racewatch/settings.yaml.
type Settings struct {
	Version int           `yaml:"version"`
	Locator LocatorConfig `yaml:"locator"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Locator: LocatorConfig{
			Provider: LocatorIPAPI,
			Endpoint: "http://ip-api.com/json/",
			Timeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
