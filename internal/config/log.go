package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/models"
)

// OpenLog configures a logger writing to ~/.racewatch/racewatch.log at the
// level named in settings. The returned closer releases the file.
func OpenLog(settings *models.Settings) (*log.Logger, io.Closer, error) {
	path, err := GlobalLogFile()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := NewLogger(f, settings.Logging.Level)
	return logger, f, nil
}

// NewLogger builds a text logger on w. Unknown level names fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return NewLogger(io.Discard, "panic")
}
