package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"q / Ctrl+c", "Quit"},
			{"?", "Toggle help"},
			{"Tab", "Switch panel focus"},
			{"1/2", "Stopwatch / Settings tab"},
		},
	},
	{
		title: "Stopwatch",
		keys: []helpKey{
			{"s / Space", "Start or stop"},
			{"r", "Reset history"},
		},
	},
	{
		title: "History",
		keys: []helpKey{
			{"j/k ↑/↓", "Scroll rows"},
			{"PgUp/PgDn", "Scroll pages"},
			{"wheel", "Scroll rows"},
		},
	},
	{
		title: "Settings",
		keys: []helpKey{
			{"j/k", "Navigate fields"},
			{"Enter", "Edit or cycle field"},
			{"Space", "Toggle boolean"},
			{"Esc", "Cancel edit"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := max(min(56, width-4), 30)

	sections := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := keyStyle.Width(14).Render(k.key)
			sections = append(sections, "  "+keyCol+hintStyle.Render(k.desc))
		}
	}
	sections = append(sections, "", hintStyle.Render("Press Esc or ? to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(sections, "\n"))
}
