package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/locator"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/stopwatch"
	"github.com/racewatch/racewatch/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	config.SetHome(t.TempDir())
	t.Cleanup(func() { config.SetHome("") })

	settings := models.NewSettings()
	settings.Locator.Provider = models.LocatorStatic
	settings.Locator.Latitude = 52.52437
	settings.Locator.Longitude = 13.41053

	logger := config.DiscardLogger()
	m, err := NewModel(Options{
		Settings: settings,
		History:  history.NewLog(store.NewMemoryStore(), logger),
		Logger:   logger,
	}, &programRef{})
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return send(t, m, msg)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestModelStartTickStop(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, "s")
	assert.NotNil(t, cmd)
	assert.Equal(t, stopwatch.Running, m.ctrl.Phase())
	assert.Equal(t, "Stop", m.ctrl.ToggleLabel())
	require.Equal(t, 2, m.historyView.Len())
	assert.Equal(t, "0 h 0 m 0 s", m.historyView.Row(0)[cellTime])
	assert.Equal(t, models.Null, m.historyView.Row(0)[cellElapsed])

	for i := 0; i < 5; i++ {
		m, cmd = send(t, m, tickMsg{tag: 1})
		assert.NotNil(t, cmd)
	}
	assert.Equal(t, 5, m.ctrl.Elapsed())

	m, _ = press(t, m, "s")
	assert.Equal(t, stopwatch.Idle, m.ctrl.Phase())
	require.Equal(t, 3, m.historyView.Len())
	assert.Equal(t, "0 h 0 m 5 s", m.historyView.Row(1)[cellTime])
	assert.Equal(t, "0 h 0 m 5 s", m.historyView.Row(1)[cellElapsed])

	// The cancelled timer's tick is ignored.
	m, cmd = send(t, m, tickMsg{tag: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 5, m.ctrl.Elapsed())
	assert.Equal(t, 2, m.log.Size())
}

func TestModelResetWhileRunning(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "s")
	m, _ = send(t, m, tickMsg{tag: 1})

	m, _ = press(t, m, "r")
	assert.Equal(t, 1, m.historyView.Len())
	assert.Equal(t, 0, m.log.Size())
	assert.Equal(t, stopwatch.Running, m.ctrl.Phase())

	m, cmd := send(t, m, tickMsg{tag: 1})
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, m.ctrl.Elapsed())
}

func TestModelLocationMessages(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "s")

	lookup := stopwatch.Lookup{Row: 1}
	m, _ = send(t, m, LocationFailedMsg{Lookup: lookup})
	assert.Equal(t, models.Null, m.historyView.Row(0)[cellLatitude])

	m, _ = send(t, m, LocationResolvedMsg{Lookup: lookup, Latitude: "52.524", Longitude: "13.410"})
	assert.Equal(t, "52.524", m.historyView.Row(0)[cellLatitude])
	assert.Equal(t, "13.410", m.historyView.Row(0)[cellLongitude])
}

func TestModelQuitConfirmWhileRunning(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "s")

	m, cmd := press(t, m, "q")
	assert.Nil(t, cmd)
	assert.True(t, m.confirmQuit)

	m, _ = press(t, m, "n")
	assert.False(t, m.confirmQuit)
	assert.Equal(t, stopwatch.Running, m.ctrl.Phase())

	m, _ = press(t, m, "s")
	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelToggleStorageSetting(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "2")
	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "j")
	}

	m, cmd := press(t, m, " ")
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(SettingsSavedMsg)
	require.True(t, ok, "got %T", msg)
	assert.False(t, saved.Settings.Storage.Enabled)

	m, _ = send(t, m, saved)
	assert.True(t, m.showSaved)
	assert.False(t, m.settings.Storage.Enabled)
	assert.Equal(t, stopwatch.Idle, m.ctrl.Phase())

	loaded, err := config.LoadSettings()
	require.NoError(t, err)
	assert.False(t, loaded.Storage.Enabled)
}

func TestModelRejectsInvalidSetting(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "2")
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, "j")
	}

	m, _ = press(t, m, "enter")
	require.True(t, m.settingsForm.IsEditing())
	m.settingsForm.InputModel().SetValue("123")
	m, _ = press(t, m, "enter")

	assert.Error(t, m.err)
	assert.Equal(t, 52.52437, m.settings.Locator.Latitude)
}

func TestModelSettingsChangedSwapsLocator(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.resolver.Available())

	next := models.NewSettings()
	next.Locator.Provider = models.LocatorNone
	m, _ = send(t, m, SettingsChangedMsg{Settings: next})

	assert.False(t, m.resolver.Available())
	assert.Nil(t, locateCmd(m.resolver, stopwatch.Lookup{}, 0))
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.View(), "Terminal too small")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	view := m.View()
	assert.Contains(t, view, "0 h 0 m 0 s")
	assert.Contains(t, view, "Start")
	assert.Contains(t, view, "Timezone")

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
}

type failingLocator struct{ err error }

func (f failingLocator) Locate(context.Context) (locator.Coordinates, error) {
	return locator.Coordinates{}, f.err
}

func TestLocateCmd(t *testing.T) {
	logger := config.DiscardLogger()
	lookup := stopwatch.Lookup{Slot: history.Slot{Index: 3, Epoch: "e"}, Row: 7}

	static := locator.NewResolver(locator.Static{Coords: locator.Coordinates{Latitude: 1.23456, Longitude: -0.5}}, logger)
	msg := locateCmd(static, lookup, 0)()
	assert.Equal(t, LocationResolvedMsg{Lookup: lookup, Latitude: "1.234", Longitude: "-0.500"}, msg)

	denied := locator.NewResolver(failingLocator{err: locator.ErrDenied}, logger)
	assert.Equal(t, LocationFailedMsg{Lookup: lookup}, locateCmd(denied, lookup, 0)())

	unavailable := locator.NewResolver(failingLocator{err: locator.ErrUnavailable}, logger)
	assert.Nil(t, locateCmd(unavailable, lookup, 0)())

	other := locator.NewResolver(failingLocator{err: errors.New("boom")}, logger)
	assert.Equal(t, LocationFailedMsg{Lookup: lookup}, locateCmd(other, lookup, 0)())

	assert.Nil(t, locateCmd(locator.NewResolver(nil, logger), lookup, 0))
}
