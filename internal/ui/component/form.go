package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-calc/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
)

// numberRunes are the characters a number field accepts.
const numberRunes = "0123456789.-+eE"

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Hint        string

	textInput textinput.Model
}

// Value returns the current text of the field.
func (ff FormField) Value() string {
	return ff.textInput.Value()
}

// ChangeFunc is called synchronously whenever the user changes a field.
type ChangeFunc func(name, value string)

// Form is a vertical list of labelled inputs. Focus moves with tab and the
// arrow keys; every edit is reported through the change hook.
type Form struct {
	fields     []FormField
	focusIndex int
	width      int
	onChange   ChangeFunc

	// Styling
	labelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	hintStyle    lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),

		hintStyle: style.WarningStyle.Italic(true),
	}
}

// AddField adds a field to the form
func (f *Form) AddField(name string, fieldType FieldType, label, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 30
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if fieldType == FieldTypeNumber && placeholder == "" {
		ti.Placeholder = "0"
	}

	f.fields = append(f.fields, FormField{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Placeholder: ti.Placeholder,
		textInput:   ti,
	})

	if len(f.fields) == 1 {
		f.fields[0].textInput.Focus()
	}
	return f
}

// OnChange sets the hook invoked after each user edit.
func (f *Form) OnChange(fn ChangeFunc) *Form {
	f.onChange = fn
	return f
}

// SetFieldValue sets the text of a field without invoking the change hook.
func (f *Form) SetFieldValue(name, value string) *Form {
	if field := f.field(name); field != nil {
		field.textInput.SetValue(value)
	}
	return f
}

// SyncValues overwrites every field except the focused one. The focused field
// keeps what the user typed, including partial input such as "1.".
func (f *Form) SyncValues(values map[string]string) {
	for i := range f.fields {
		if i == f.focusIndex {
			continue
		}
		if value, ok := values[f.fields[i].Name]; ok && f.fields[i].textInput.Value() != value {
			f.fields[i].textInput.SetValue(value)
		}
	}
}

// SetFieldHint shows a note under a field; an empty hint removes it.
func (f *Form) SetFieldHint(name, hint string) *Form {
	if field := f.field(name); field != nil {
		field.Hint = hint
	}
	return f
}

// Focused returns the name of the focused field.
func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focusIndex].Name
}

// Focus moves focus to the named field.
func (f *Form) Focus(name string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.setFocus(i)
			return
		}
	}
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) *Form {
	f.width = width
	if inputWidth := width - 4; inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down", "enter":
			f.setFocus((f.focusIndex + 1) % len(f.fields))
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focusIndex - 1 + len(f.fields)) % len(f.fields))
			return f, nil
		case "ctrl+u":
			f.edit(func(ti *textinput.Model) tea.Cmd {
				ti.SetValue("")
				return nil
			})
			return f, nil
		}

		if keyMsg.Type == tea.KeyRunes && f.fields[f.focusIndex].Type == FieldTypeNumber {
			keyMsg.Runes = filterRunes(keyMsg.Runes, numberRunes)
			if len(keyMsg.Runes) == 0 {
				return f, nil
			}
			msg = keyMsg
		}
	}

	cmd := f.edit(func(ti *textinput.Model) tea.Cmd {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	})
	return f, cmd
}

// edit applies fn to the focused input and reports a changed value.
func (f *Form) edit(fn func(*textinput.Model) tea.Cmd) tea.Cmd {
	field := &f.fields[f.focusIndex]
	before := field.textInput.Value()
	cmd := fn(&field.textInput)

	if after := field.textInput.Value(); after != before && f.onChange != nil {
		f.onChange(field.Name, after)
	}
	return cmd
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder
	for i, field := range f.fields {
		content.WriteString(f.labelStyle.Render(field.Label))
		content.WriteString("\n")

		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}
		content.WriteString(fieldStyle.Render(field.textInput.View()))

		if field.Hint != "" {
			content.WriteString("\n")
			content.WriteString(f.hintStyle.Render(field.Hint))
		}
		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// Values returns all form field values as a map
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Name] = field.Value()
	}
	return values
}

// Value returns the value of a specific field
func (f *Form) Value(name string) string {
	if field := f.field(name); field != nil {
		return field.Value()
	}
	return ""
}

func (f *Form) field(name string) *FormField {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *Form) setFocus(index int) {
	f.fields[f.focusIndex].textInput.Blur()
	f.focusIndex = index
	f.fields[f.focusIndex].textInput.Focus()
}

func filterRunes(runes []rune, allowed string) []rune {
	kept := runes[:0:0]
	for _, r := range runes {
		if strings.ContainsRune(allowed, r) {
			kept = append(kept, r)
		}
	}
	return kept
}
