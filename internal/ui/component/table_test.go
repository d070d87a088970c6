package component

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTableSelection(t *testing.T) {
	table := NewTable(
		TableColumn{Header: "Token", Width: 10},
		TableColumn{Header: "Invested", Width: 20, Align: lipgloss.Right},
	).SetSelectable(true)
	table.SetRows([][]string{{"BTC", "1"}, {"ETH", "2"}, {"SOL", "3"}})

	table.MoveDown().MoveDown().MoveDown()
	assert.Equal(t, 2, table.SelectedRow())

	table.SetRows([][]string{{"BTC", "1"}})
	assert.Equal(t, 0, table.SelectedRow(), "selection follows shrinking rows")

	table.MoveUp()
	assert.Equal(t, 0, table.SelectedRow())
}

func TestTableViewTruncates(t *testing.T) {
	table := NewTable(TableColumn{Header: "Token", Width: 8}).SetShowBorder(false)
	table.SetRows([][]string{{"AVERYLONGTOKENNAME"}})

	view := table.View()
	assert.Contains(t, view, "Token")
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, "AVERYLONGTOKENNAME")
}
