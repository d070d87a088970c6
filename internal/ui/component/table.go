package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-calc/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int // zero shares the remaining width
	Align  lipgloss.Position
}

// Table represents a data table component
type Table struct {
	columns     []TableColumn
	rows        [][]string
	width       int
	selectedRow int

	// Styling
	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	// Configuration
	showBorder bool
	selectable bool
}

// NewTable creates a new table component
func NewTable(columns ...TableColumn) *Table {
	palette := style.DefaultPalette()

	return &Table{
		columns: columns,

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
	}
}

// SetRows replaces all rows and keeps the selection in range
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	if t.selectedRow >= len(rows) {
		t.selectedRow = max(len(rows)-1, 0)
	}
	return t
}

// SetWidth sets the table width used for auto-width columns
func (t *Table) SetWidth(width int) *Table {
	t.width = width
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables table border
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SelectedRow returns the currently selected row index
func (t *Table) SelectedRow() int {
	return t.selectedRow
}

// SetSelectedRow sets the currently selected row
func (t *Table) SetSelectedRow(index int) *Table {
	if index >= 0 && index < len(t.rows) {
		t.selectedRow = index
	}
	return t
}

// MoveUp moves selection up
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
	}
	return t
}

// MoveDown moves selection down
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
	}
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}

	widths := t.columnWidths()
	lines := make([]string, 0, len(t.rows)+2)

	header := make([]string, len(t.columns))
	separator := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = t.renderCell(col.Header, widths[i], col.Align, t.headerStyle)
		separator[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, strings.Join(header, "│"), strings.Join(separator, "┼"))

	for rowIndex, row := range t.rows {
		rowStyle := t.rowStyle
		if t.selectable && rowIndex == t.selectedRow {
			rowStyle = t.selectedRowStyle
		}

		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = t.renderCell(value, widths[i], col.Align, rowStyle)
		}
		lines = append(lines, strings.Join(cells, "│"))
	}

	result := strings.Join(lines, "\n")
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// renderCell renders a single table cell, truncating on rune boundaries
func (t *Table) renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	inner := width - cellStyle.GetHorizontalPadding()
	if runes := []rune(content); inner > 0 && len(runes) > inner {
		if inner > 1 {
			content = string(runes[:inner-1]) + "…"
		} else {
			content = string(runes[:inner])
		}
	}
	return cellStyle.Width(width).Align(align).Render(content)
}

// columnWidths resolves auto-width columns against the table width
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, auto := 0, 0
	for i, col := range t.columns {
		widths[i] = col.Width
		if col.Width > 0 {
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto == 0 {
		return widths
	}

	available := t.width - fixed - (len(t.columns) - 1)
	if t.showBorder {
		available -= 2
	}
	share := max(available/auto, 12)
	for i := range widths {
		if widths[i] <= 0 {
			widths[i] = share
		}
	}
	return widths
}
