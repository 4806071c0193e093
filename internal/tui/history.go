package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/stopwatch"
)

// historyHeader is the fixed column order of the history table.
var historyHeader = []string{"Time", "Timezone", "Latitude", "Longitude", "Elapsed"}

// Cell positions within a row.
const (
	cellTime = iota
	cellTimezone
	cellLatitude
	cellLongitude
	cellElapsed
)

type historyRow struct {
	id    stopwatch.RowID
	cells []string
}

// HistoryView renders recorded entries as a table: one header row plus one
// row per entry. It implements stopwatch.View.
type HistoryView struct {
	rows     []historyRow
	nextID   stopwatch.RowID
	viewport viewport.Model
	width    int
	height   int
}

var _ stopwatch.View = (*HistoryView)(nil)

// NewHistoryView creates an empty table.
func NewHistoryView() *HistoryView {
	h := &HistoryView{viewport: viewport.New(80, 20)}
	h.refresh()
	return h
}

// Append adds a row for e and returns its id.
func (h *HistoryView) Append(e models.Entry) stopwatch.RowID {
	h.nextID++
	h.rows = append(h.rows, historyRow{id: h.nextID, cells: e.Fields()})
	h.refresh()
	h.viewport.GotoBottom()
	return h.nextID
}

// PatchCoordinates overwrites the latitude and longitude cells of a row.
func (h *HistoryView) PatchCoordinates(id stopwatch.RowID, lat, lon string) bool {
	for i := range h.rows {
		if h.rows[i].id == id {
			h.rows[i].cells[cellLatitude] = lat
			h.rows[i].cells[cellLongitude] = lon
			h.refresh()
			return true
		}
	}
	return false
}

// LastTime returns the time cell of the last row.
func (h *HistoryView) LastTime() (string, bool) {
	if len(h.rows) == 0 {
		return "", false
	}
	return h.rows[len(h.rows)-1].cells[cellTime], true
}

// Clear removes every row except the header.
func (h *HistoryView) Clear() {
	h.rows = nil
	h.refresh()
	h.viewport.GotoTop()
}

// Replace swaps the table body for entries, in order.
func (h *HistoryView) Replace(entries []models.Entry) {
	h.rows = nil
	for _, e := range entries {
		h.nextID++
		h.rows = append(h.rows, historyRow{id: h.nextID, cells: e.Fields()})
	}
	h.refresh()
	h.viewport.GotoBottom()
}

// Len returns the number of rows including the header.
func (h *HistoryView) Len() int {
	return len(h.rows) + 1
}

// Row returns the cells of data row i (0-based, header excluded).
func (h *HistoryView) Row(i int) []string {
	if i < 0 || i >= len(h.rows) {
		return nil
	}
	return append([]string(nil), h.rows[i].cells...)
}

// SetSize updates dimensions.
func (h *HistoryView) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.viewport.Width = width
	h.viewport.Height = height
	h.refresh()
}

// ScrollUp scrolls the table up by n lines.
func (h *HistoryView) ScrollUp(n int) {
	h.viewport.LineUp(n)
}

// ScrollDown scrolls the table down by n lines.
func (h *HistoryView) ScrollDown(n int) {
	h.viewport.LineDown(n)
}

// PageUp scrolls up half a page.
func (h *HistoryView) PageUp() {
	h.viewport.HalfViewUp()
}

// PageDown scrolls down half a page.
func (h *HistoryView) PageDown() {
	h.viewport.HalfViewDown()
}

// View renders the visible part of the table.
func (h *HistoryView) View() string {
	return h.viewport.View()
}

func (h *HistoryView) refresh() {
	body := make([][]string, len(h.rows))
	for i, r := range h.rows {
		body[i] = r.cells
	}
	content := RenderTable(body, h.width)
	if len(h.rows) == 0 {
		content += "\n" + lipgloss.NewStyle().Foreground(colorDim).Render(" No entries yet. Press Space to start.")
	}
	h.viewport.SetContent(content)
}

// RenderTable renders rows under the history header. A width of zero lets
// the table size itself.
func RenderTable(rows [][]string, width int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		BorderRow(false).
		Headers(historyHeader...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(rows) && col < len(rows[row]) && rows[row][col] == models.Null {
				return tableNullStyle
			}
			return tableCellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}
	return strings.TrimRight(t.String(), "\n")
}
