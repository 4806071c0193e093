// Package tui implements the interactive stopwatch for racewatch.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/watcher"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Options are the collaborators the TUI runs with.
type Options struct {
	Settings *models.Settings
	History  *history.Log
	Logger   *log.Logger
}

// Run launches the stopwatch TUI and blocks until it exits.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = config.DiscardLogger()
	}
	ref := &programRef{}
	model, err := NewModel(opts, ref)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	ref.Set(p)
	defer ref.Clear()

	stop := watchSettings(ref, opts.Logger)
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// watchSettings forwards settings.yaml changes into the program. Failing to
// watch only loses hot reload.
func watchSettings(ref *programRef, logger *log.Logger) func() {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		logger.WithError(err).Warn("Settings hot reload disabled")
		return func() {}
	}

	w, err := watcher.New(logger, path)
	if err != nil {
		logger.WithError(err).Warn("Settings hot reload disabled")
		return func() {}
	}
	if err := w.Start(); err != nil {
		logger.WithError(err).Warn("Settings hot reload disabled")
		w.Stop()
		return func() {}
	}

	go func() {
		for range w.Events() {
			settings, err := config.LoadSettings()
			if err != nil {
				ref.Send(ErrorMsg{Err: fmt.Errorf("failed to reload settings: %w", err)})
				continue
			}
			ref.Send(SettingsChangedMsg{Settings: settings})
		}
	}()

	return w.Stop
}
