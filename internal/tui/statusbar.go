package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.confirmQuit {
		return renderConfirmBar("Stopwatch running. Quit? (y/n)", width)
	}
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}
	if m.showSaved {
		return renderSavedBar(width)
	}

	left := " " + getKeyHints(m)
	right := hintStyle.Render(m.settings.Locator.Provider) + " "

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	base := keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " + keyHint("Tab", "switch")

	if m.focusedPanel == 0 && m.leftTab == tabSettings {
		if m.settingsForm.IsEditing() {
			return keyHint("Enter", "save") + "  " + keyHint("Esc", "cancel")
		}
		return base + "  " + keyHint("j/k", "navigate") + "  " +
			keyHint("Enter", "edit") + "  " + keyHint("Space", "toggle")
	}

	hints := base + "  " + keyHint("s", strings.ToLower(m.ctrl.ToggleLabel())) + "  " + keyHint("r", "reset")
	if m.focusedPanel == 1 {
		hints += "  " + keyHint("j/k", "scroll")
	}
	return hints
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
