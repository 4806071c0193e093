package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/locator"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/stopwatch"
	"github.com/racewatch/racewatch/internal/timecodec"
)

// Left panel tabs.
const (
	tabStopwatch = 0
	tabSettings  = 1
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	// Stopwatch state and collaborators
	ctrl     *stopwatch.Controller
	log      *history.Log
	resolver *locator.Resolver
	settings *models.Settings
	logger   log.FieldLogger

	// UI state
	leftTab      int // 0=Stopwatch, 1=Settings
	focusedPanel int // 0=left, 1=right
	showHelp     bool
	confirmQuit  bool
	splitRatio   float64
	width        int
	height       int

	// Status display
	err       error
	showSaved bool

	// Child components
	historyView  *HistoryView
	settingsForm *SettingsForm

	// Program reference for goroutine Send()
	program *programRef
}

// NewModel creates the initial TUI model and renders the persisted history.
func NewModel(opts Options, program *programRef) (Model, error) {
	settings := opts.Settings
	if settings == nil {
		settings = models.NewSettings()
	}
	var logger log.FieldLogger = opts.Logger
	if opts.Logger == nil {
		logger = config.DiscardLogger()
	}
	hist := opts.History
	if hist == nil {
		hist = history.NewLog(nil, logger)
	}

	loc, err := locator.New(settings.Locator)
	if err != nil {
		return Model{}, err
	}

	view := NewHistoryView()
	entries, err := hist.Load()
	if err != nil {
		logger.WithError(err).Warn("Failed to load history")
	}
	view.Replace(entries)

	form := NewSettingsForm()
	form.LoadFromSettings(settings)

	return Model{
		ctrl:         stopwatch.NewController(view, hist, logger),
		log:          hist,
		resolver:     locator.NewResolver(loc, logger),
		settings:     settings,
		logger:       logger.WithField("component", "tui"),
		splitRatio:   0.35,
		historyView:  view,
		settingsForm: form,
		program:      program,
	}, nil
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	// ── Stopwatch tick ─────────────────────────────────────────────
	case tickMsg:
		if m.ctrl.Tick(msg.tag) {
			cmds = append(cmds, tickCmd(msg.tag))
		}
		return m, tea.Batch(cmds...)

	// ── Location lookups ───────────────────────────────────────────
	case LocationResolvedMsg:
		m.ctrl.ApplyLocation(msg.Lookup, msg.Latitude, msg.Longitude)
		return m, nil

	case LocationFailedMsg:
		// Coordinates stay NULL for this entry; lookups are never retried.
		return m, nil

	// ── Settings ───────────────────────────────────────────────────
	case SettingsChangedMsg:
		m.applySettings(msg.Settings)
		return m, nil

	case SettingsSavedMsg:
		m.applySettings(msg.Settings)
		m.showSaved = true
		return m, clearSavedAfter(3 * time.Second)

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil
	}

	return m, nil
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmQuit {
		return m.handleConfirmKey(msg)
	}

	// Help overlay: any close key dismisses it
	if m.showHelp {
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.showHelp = false
		}
		return nil
	}

	// Inline settings edit captures everything
	if m.focusedPanel == 0 && m.leftTab == tabSettings && m.settingsForm.IsEditing() {
		return m.handleSettingsEditKey(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		if m.ctrl.Phase() == stopwatch.Running {
			m.confirmQuit = true
			return nil
		}
		return m.doQuit()

	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, globalKeys.Tab):
		m.focusedPanel = 1 - m.focusedPanel
		return nil

	case key.Matches(msg, tabSwitchKeys.Tab1):
		m.leftTab = tabStopwatch
		m.focusedPanel = 0
		return nil

	case key.Matches(msg, tabSwitchKeys.Tab2):
		m.leftTab = tabSettings
		m.focusedPanel = 0
		return nil
	}

	if m.focusedPanel == 0 && m.leftTab == tabSettings {
		if cmd, handled := m.handleSettingsKey(msg); handled {
			return cmd
		}
	}
	if m.focusedPanel == 1 && m.handleHistoryKey(msg) {
		return nil
	}

	switch {
	case key.Matches(msg, stopwatchKeys.Toggle):
		return m.toggle()
	case key.Matches(msg, stopwatchKeys.Reset):
		m.reset()
	}
	return nil
}

// toggle starts or stops the stopwatch and fires the location lookup for
// the entry it recorded.
func (m *Model) toggle() tea.Cmd {
	t := m.ctrl.Toggle()
	if t.Err != nil {
		m.err = fmt.Errorf("history not saved: %w", t.Err)
	}

	var cmds []tea.Cmd
	if t.Phase == stopwatch.Running {
		cmds = append(cmds, tickCmd(t.TimerTag))
	}
	cmds = append(cmds, locateCmd(m.resolver, t.Lookup, m.settings.Locator.Timeout))
	if t.Err != nil {
		cmds = append(cmds, clearErrorAfter(5*time.Second))
	}
	return tea.Batch(cmds...)
}

func (m *Model) reset() {
	if err := m.ctrl.Reset(); err != nil {
		m.err = fmt.Errorf("history not cleared: %w", err)
	}
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, historyKeys.Up):
		m.historyView.ScrollUp(1)
	case key.Matches(msg, historyKeys.Down):
		m.historyView.ScrollDown(1)
	case key.Matches(msg, historyKeys.PageUp):
		m.historyView.PageUp()
	case key.Matches(msg, historyKeys.PageDown):
		m.historyView.PageDown()
	default:
		return false
	}
	return true
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, settingsKeys.Up):
		m.settingsForm.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		m.settingsForm.MoveDown()
	case key.Matches(msg, settingsKeys.Toggle):
		if changed, k, v := m.settingsForm.Toggle(); changed {
			return m.saveSetting(k, v), true
		}
	case key.Matches(msg, settingsKeys.Enter):
		if m.settingsForm.StartEdit() {
			return nil, true
		}
		if changed, k, v := m.settingsForm.Toggle(); changed {
			return m.saveSetting(k, v), true
		}
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSettingsEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if changed, k, v := m.settingsForm.FinishEdit(); changed {
			return m.saveSetting(k, v)
		}
		return nil
	case tea.KeyEscape:
		m.settingsForm.CancelEdit()
		return nil
	}

	ti := m.settingsForm.InputModel()
	newTI, _ := ti.Update(msg)
	*ti = newTI
	return nil
}

func (m *Model) saveSetting(key, value string) tea.Cmd {
	next, err := config.ApplySetting(m.settings, key, value)
	if err != nil {
		m.settingsForm.LoadFromSettings(m.settings)
		m.err = err
		return clearErrorAfter(5 * time.Second)
	}
	return saveSettingsCmd(next)
}

// applySettings swaps in new settings. The locator follows immediately;
// storage changes wait for the next launch.
func (m *Model) applySettings(settings *models.Settings) {
	loc, err := locator.New(settings.Locator)
	if err != nil {
		m.err = err
		return
	}
	m.settings = settings
	m.resolver = locator.NewResolver(loc, m.logger)
	if !m.settingsForm.IsEditing() {
		m.settingsForm.LoadFromSettings(settings)
	}
	m.logger.WithField("provider", settings.Locator.Provider).Info("Settings reloaded")
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		m.confirmQuit = false
		return m.doQuit()
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmQuit = false
	}
	return nil
}

// doQuit clears the program ref and quits. Elapsed time is not persisted.
func (m *Model) doQuit() tea.Cmd {
	if m.program != nil {
		m.program.Clear()
	}
	return tea.Quit
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	layout := computeLayout(m.width, m.height, m.splitRatio)
	if msg.X < layout.dividerCol {
		m.focusedPanel = 0
		return
	}
	m.focusedPanel = 1
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.historyView.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.historyView.ScrollDown(3)
	}
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	layout := computeLayout(m.width, m.height, m.splitRatio)
	innerHeight := max(layout.contentHeight-2, 1)
	leftInner := max(layout.leftWidth-2, 1)
	rightInner := max(layout.rightWidth-2, 1)

	m.historyView.SetSize(rightInner, innerHeight)
	m.settingsForm.SetSize(leftInner, innerHeight)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < 60 || m.height < 16 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 60x16, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	layout := computeLayout(m.width, m.height, m.splitRatio)
	header := renderHeader(m.leftTab, m.ctrl.Phase(), m.log.Available(), m.resolver.Available(), m.width)

	var left string
	switch m.leftTab {
	case tabStopwatch:
		left = m.renderStopwatch(layout.leftWidth - 2)
	case tabSettings:
		left = m.settingsForm.View()
	}

	panels := renderPanels(left, m.historyView.View(), layout, m.focusedPanel)
	statusBar := renderStatusBar(&m, m.width)
	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	if m.showHelp {
		view = placeOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}

func (m Model) renderStopwatch(width int) string {
	clock := clockStyle
	if m.ctrl.Phase() == stopwatch.Running {
		clock = clockRunningStyle
	}
	display := clock.Width(width).Align(lipgloss.Center).Render(timecodec.Format(m.ctrl.Elapsed()))

	toggle := startButtonStyle.Render(m.ctrl.ToggleLabel())
	if m.ctrl.Phase() == stopwatch.Running {
		toggle = stopButtonStyle.Render(m.ctrl.ToggleLabel())
	}
	buttons := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, toggle, "  ", resetButtonStyle.Render("Reset")),
	)

	entries := lipgloss.NewStyle().Foreground(colorDim).Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("%d entries", m.historyView.Len()-1))

	return lipgloss.JoinVertical(lipgloss.Left, display, buttons, "", entries)
}
