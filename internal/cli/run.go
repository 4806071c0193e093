package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/store"
	"github.com/racewatch/racewatch/internal/tui"
)

var errNotTerminal = errors.New("racewatch needs an interactive terminal; use 'racewatch history' to print the log")

func runStopwatch(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if !env.history.Available() {
		fmt.Fprintln(cmd.ErrOrStderr(), styleWarning.Render("History storage unavailable, entries will not be saved."))
	}

	return tui.Run(tui.Options{
		Settings: env.settings,
		History:  env.history,
		Logger:   env.logger,
	})
}

// env bundles what every command needs: settings, the diagnostic log and the
// persistent history.
type env struct {
	settings *models.Settings
	logger   *log.Logger
	history  *history.Log
	closer   io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// openEnv loads settings and opens the history store. A store that cannot be
// opened leaves the history in degraded mode; it is never fatal.
func openEnv() (*env, error) {
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, fmt.Errorf("failed to create racewatch directory: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logger, closer, err := config.OpenLog(settings)
	if err != nil {
		logger, closer = config.DiscardLogger(), nil
	}

	var kv store.Store
	if settings.Storage.Enabled {
		path, err := config.HistoryPath(settings)
		if err == nil {
			var fs *store.FileStore
			fs, err = store.OpenFile(path)
			if err == nil {
				kv = fs
			}
		}
		if err != nil {
			logger.WithError(err).Warn("No storage available")
		}
	} else {
		logger.Info("Storage disabled in settings")
	}

	return &env{
		settings: settings,
		logger:   logger,
		history:  history.NewLog(kv, logger),
		closer:   closer,
	}, nil
}
