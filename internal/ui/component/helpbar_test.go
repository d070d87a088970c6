package component

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestHelpBarCompactShowsKeysOnly(t *testing.T) {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new calculator")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
	bar := NewHelpBar().SetKeyBindings(bindings).SetWidth(120)

	full := bar.View()
	assert.Contains(t, full, "new calculator")

	compact := bar.SetCompact(true).View()
	assert.Contains(t, compact, "n")
	assert.Contains(t, compact, "esc")
	assert.NotContains(t, compact, "new calculator")
	assert.NotContains(t, compact, "back")
}

func TestHelpBarEmpty(t *testing.T) {
	assert.Empty(t, NewHelpBar().View())
}
