package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/locator"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/stopwatch"
)

// tickInterval is the stopwatch resolution.
const tickInterval = time.Second

// tickCmd schedules the next tick for the timer identified by tag. Each tick
// is scheduled only after the previous one was handled, so ticks never
// overlap.
func tickCmd(tag int) tea.Cmd {
	return tea.Tick(tickInterval, func(_ time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

// locateCmd resolves the position for one entry. The lookup identifiers are
// captured here so the result patches that entry and nothing else. With no
// location capability the command produces no message.
func locateCmd(resolver *locator.Resolver, lookup stopwatch.Lookup, timeout time.Duration) tea.Cmd {
	if !resolver.Available() {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var msg tea.Msg
		resolver.Resolve(ctx, func(lat, lon string) {
			msg = LocationResolvedMsg{Lookup: lookup, Latitude: lat, Longitude: lon}
		}, func() {
			msg = LocationFailedMsg{Lookup: lookup}
		})
		return msg
	}
}

func saveSettingsCmd(settings *models.Settings) tea.Cmd {
	return func() tea.Msg {
		if err := config.SaveSettings(settings); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save settings: %w", err)}
		}
		return SettingsSavedMsg{Settings: settings}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
