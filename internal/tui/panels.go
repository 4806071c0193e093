package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// panelLayout holds computed dimensions for the two-panel layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
	dividerCol    int // mouse hit testing
}

// computeLayout splits the screen below the header and above the status bar.
// Widths include the panel borders; one column goes to the divider.
func computeLayout(width, height int, splitRatio float64) panelLayout {
	usable := width - 1
	leftWidth := max(int(float64(usable)*splitRatio), 24)
	rightWidth := max(usable-leftWidth, 10)

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: max(height-2, 1),
		dividerCol:    leftWidth,
	}
}

func renderPanels(leftContent, rightContent string, layout panelLayout, focusedPanel int) string {
	leftStyle, rightStyle := focusedBorderStyle, unfocusedBorderStyle
	if focusedPanel == 1 {
		leftStyle, rightStyle = unfocusedBorderStyle, focusedBorderStyle
	}

	leftInner := max(layout.leftWidth-2, 1)
	rightInner := max(layout.rightWidth-2, 1)
	innerHeight := max(layout.contentHeight-2, 1)

	left := leftStyle.
		Width(leftInner).
		Height(innerHeight).
		Render(fitContent(leftContent, leftInner, innerHeight))
	right := rightStyle.
		Width(rightInner).
		Height(innerHeight).
		Render(fitContent(rightContent, rightInner, innerHeight))

	divider := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(strings.TrimSuffix(strings.Repeat("│\n", lipgloss.Height(left)), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// fitContent clips content to width x height, ANSI-aware.
func fitContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
