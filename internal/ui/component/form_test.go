package component

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type change struct{ name, value string }

func newTestForm(changes *[]change) *Form {
	return NewForm().
		AddField("token_name", FieldTypeText, "Token Name", "BTC").
		AddField("current_price", FieldTypeNumber, "Current Price ($)", "").
		AddField("expected_price_target", FieldTypeNumber, "Expected Price Target ($)", "").
		OnChange(func(name, value string) {
			*changes = append(*changes, change{name, value})
		})
}

func typeText(f *Form, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFormReportsEachEdit(t *testing.T) {
	var changes []change
	f := newTestForm(&changes)

	typeText(f, "ETH")
	assert.Equal(t, "ETH", f.Value("token_name"))
	assert.Equal(t, []change{{"token_name", "E"}, {"token_name", "ET"}, {"token_name", "ETH"}}, changes)
}

func TestFormNumberFieldFiltersRunes(t *testing.T) {
	var changes []change
	f := newTestForm(&changes)
	f.Focus("current_price")

	typeText(f, "1a.5x")
	assert.Equal(t, "1.5", f.Value("current_price"))
	assert.Len(t, changes, 3, "rejected characters are not edits")
}

func TestFormFocusNavigation(t *testing.T) {
	f := newTestForm(new([]change))
	assert.Equal(t, "token_name", f.Focused())

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "current_price", f.Focused())

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "expected_price_target", f.Focused(), "focus wraps around")
}

func TestFormClearField(t *testing.T) {
	var changes []change
	f := newTestForm(&changes)
	f.Focus("current_price")
	typeText(f, "42")

	f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, f.Value("current_price"))
	assert.Equal(t, change{"current_price", ""}, changes[len(changes)-1])
}

func TestFormSyncValuesSkipsFocusedField(t *testing.T) {
	var changes []change
	f := newTestForm(&changes)
	f.Focus("current_price")
	typeText(f, "1.")

	f.SyncValues(map[string]string{
		"current_price":         "1",
		"expected_price_target": "4",
	})

	assert.Equal(t, "1.", f.Value("current_price"))
	assert.Equal(t, "4", f.Value("expected_price_target"))
	assert.Len(t, changes, 2, "synced values do not invoke the hook")
}

func TestFormHintRendered(t *testing.T) {
	f := newTestForm(new([]change))
	f.SetFieldHint("expected_price_target", "set at $2")
	assert.Contains(t, f.View(), "set at $2")
	assert.Contains(t, f.View(), "Current Price ($)")
}
