package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/racewatch/racewatch/internal/stopwatch"
)

func renderHeader(leftTab int, phase stopwatch.Phase, storage, location bool, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("◷")
	name := lipgloss.NewStyle().Bold(true).Render("racewatch")
	tabs := renderTabs([]string{"Stopwatch", "Settings"}, leftTab)

	left := fmt.Sprintf(" %s %s  %s", dot, name, tabs)
	right := renderCapabilities(storage, location) + "  " + renderPhaseBadge(phase) + " "

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}

// renderCapabilities flags missing host capabilities. Nothing is shown when
// both are present.
func renderCapabilities(storage, location bool) string {
	var missing []string
	if !storage {
		missing = append(missing, "no storage")
	}
	if !location {
		missing = append(missing, "no location")
	}
	if len(missing) == 0 {
		return ""
	}
	return badgeWarnStyle.Render("⚠ " + strings.Join(missing, ", "))
}

func renderPhaseBadge(phase stopwatch.Phase) string {
	if phase == stopwatch.Running {
		return badgeRunningStyle.Render("● Running")
	}
	return badgeIdleStyle.Render("● Idle")
}
