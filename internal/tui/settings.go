package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/models"
)

type fieldKind int

const (
	kindText   fieldKind = iota
	kindBool             // Space flips true/false
	kindChoice           // Space/Enter cycles through choices
)

// settingField is one row of the settings form. Values are kept as the
// strings config.ApplySetting accepts.
type settingField struct {
	label   string
	key     string
	value   string
	kind    fieldKind
	choices []string
}

var providerChoices = []string{models.LocatorIPAPI, models.LocatorStatic, models.LocatorNone}

// SettingsForm is the Settings tab. It only edits values; saving and
// validation happen in the model through config.ApplySetting.
type SettingsForm struct {
	fields  []settingField
	cursor  int
	editing bool
	input   textinput.Model
	width   int
	height  int
}

// NewSettingsForm creates an empty form.
func NewSettingsForm() *SettingsForm {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = ""
	return &SettingsForm{input: ti}
}

// LoadFromSettings replaces every field value. The cursor is kept.
func (s *SettingsForm) LoadFromSettings(settings *models.Settings) {
	loc := settings.Locator
	s.fields = []settingField{
		{label: "Locator", key: config.SettingProvider, value: loc.Provider, kind: kindChoice, choices: providerChoices},
		{label: "Endpoint", key: config.SettingEndpoint, value: loc.Endpoint},
		{label: "Timeout", key: config.SettingTimeout, value: loc.Timeout.String()},
		{label: "Latitude", key: config.SettingLatitude, value: strconv.FormatFloat(loc.Latitude, 'f', -1, 64)},
		{label: "Longitude", key: config.SettingLongitude, value: strconv.FormatFloat(loc.Longitude, 'f', -1, 64)},
		{label: "Storage", key: config.SettingStorage, value: strconv.FormatBool(settings.Storage.Enabled), kind: kindBool},
		{label: "Log level", key: config.SettingLogLevel, value: settings.Logging.Level},
	}
	s.cursor = min(s.cursor, len(s.fields)-1)
}

// SetSize updates dimensions.
func (s *SettingsForm) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = max(width-settingsLabelStyle.GetWidth()-2, 1)
}

func (s *SettingsForm) MoveUp() {
	if !s.editing && s.cursor > 0 {
		s.cursor--
	}
}

func (s *SettingsForm) MoveDown() {
	if !s.editing && s.cursor < len(s.fields)-1 {
		s.cursor++
	}
}

func (s *SettingsForm) current() *settingField {
	if s.cursor < 0 || s.cursor >= len(s.fields) {
		return nil
	}
	return &s.fields[s.cursor]
}

// Toggle flips a boolean field or advances a choice field. Text fields are
// left alone.
func (s *SettingsForm) Toggle() (changed bool, key, value string) {
	f := s.current()
	if f == nil {
		return false, "", ""
	}
	switch f.kind {
	case kindBool:
		b, _ := strconv.ParseBool(f.value)
		f.value = strconv.FormatBool(!b)
	case kindChoice:
		next := 0
		for i, c := range f.choices {
			if c == f.value {
				next = (i + 1) % len(f.choices)
				break
			}
		}
		f.value = f.choices[next]
	default:
		return false, "", ""
	}
	return true, f.key, f.value
}

// StartEdit opens the inline editor on a text field.
func (s *SettingsForm) StartEdit() bool {
	f := s.current()
	if f == nil || f.kind != kindText {
		return false
	}
	s.editing = true
	s.input.SetValue(f.value)
	s.input.CursorEnd()
	s.input.Focus()
	return true
}

// FinishEdit closes the editor. changed is false when the value is the same.
func (s *SettingsForm) FinishEdit() (changed bool, key, value string) {
	if !s.editing {
		return false, "", ""
	}
	s.CancelEdit()

	f := s.current()
	v := strings.TrimSpace(s.input.Value())
	if f == nil || v == f.value {
		return false, "", ""
	}
	f.value = v
	return true, f.key, v
}

func (s *SettingsForm) CancelEdit() {
	s.editing = false
	s.input.Blur()
}

func (s *SettingsForm) IsEditing() bool {
	return s.editing
}

// InputModel exposes the text input for key forwarding.
func (s *SettingsForm) InputModel() *textinput.Model {
	return &s.input
}

// View renders the form.
func (s *SettingsForm) View() string {
	lines := make([]string, 0, len(s.fields)+2)
	for i, f := range s.fields {
		line := settingsLabelStyle.Render(f.label) + " " + s.renderValue(i, f)
		if i == s.cursor {
			line = settingsCursorStyle.Width(s.width).Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", hintStyle.Render("Storage changes apply on next launch."))
	return strings.Join(lines, "\n")
}

func (s *SettingsForm) renderValue(i int, f settingField) string {
	switch {
	case s.editing && i == s.cursor:
		return s.input.View()
	case f.kind == kindBool:
		if f.value == "true" {
			return settingsToggleOn.Render("[ON]")
		}
		return settingsToggleOff.Render("[OFF]")
	case f.kind == kindChoice:
		return settingsValueStyle.Render("‹ " + f.value + " ›")
	case f.value == "":
		return lipgloss.NewStyle().Foreground(colorDim).Render("(empty)")
	default:
		return settingsValueStyle.Render(f.value)
	}
}
