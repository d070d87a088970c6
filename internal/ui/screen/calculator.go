package screen

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/ui"
	"github.com/rovshanmuradov/token-calc/internal/ui/component"
	"github.com/rovshanmuradov/token-calc/internal/ui/router"
	"github.com/rovshanmuradov/token-calc/internal/ui/style"
)

// CalculatorScreen edits one calculator session. Every keystroke is applied
// to the session immediately and the results are redrawn from its output.
type CalculatorScreen struct {
	session *calculator.Session
	logger  *zap.Logger
	width   int
	height  int

	form    *component.Form
	results *component.Table
	helpBar *component.HelpBar
}

// NewCalculatorScreen creates a screen bound to session
func NewCalculatorScreen(services ui.ServiceProvider, session *calculator.Session) *CalculatorScreen {
	keyMap := ui.DefaultKeyMap()

	s := &CalculatorScreen{
		session: session,
		logger:  services.GetLogger().With(zap.String("session_id", session.ID())),
		form:    component.NewForm(),
		results: component.NewTable(
			component.TableColumn{Header: "Result", Width: 28},
			component.TableColumn{Header: "Value", Align: lipgloss.Right},
		),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteCalculator)),
	}

	for _, field := range calculator.Fields {
		fieldType := component.FieldTypeNumber
		if field.IsText() {
			fieldType = component.FieldTypeText
		}
		placeholder := ""
		if field.IsTarget() {
			placeholder = "not set"
		}
		s.form.AddField(field.String(), fieldType, field.Label(), placeholder)
		s.form.SetFieldValue(field.String(), session.Text(field))
	}
	s.form.OnChange(s.applyEdit)

	s.sync()
	return s
}

// Session returns the edited session
func (s *CalculatorScreen) Session() *calculator.Session {
	return s.session
}

// Init initializes the screen
func (s *CalculatorScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (s *CalculatorScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		s.form, cmd = s.form.Update(msg)
		return s, cmd
	}
	return s, nil
}

// applyEdit is the form change hook.
func (s *CalculatorScreen) applyEdit(name, value string) {
	field, err := calculator.ParseField(name)
	if err != nil {
		s.logger.Error("Form field has no calculator input", zap.String("field", name))
		return
	}
	s.session.Set(field, value)
	s.sync()
}

// sync pushes session state back into the form and the results table.
func (s *CalculatorScreen) sync() {
	values := make(map[string]string, len(calculator.Fields))
	for _, field := range calculator.Fields {
		values[field.String()] = s.session.Text(field)
	}
	s.form.SyncValues(values)

	in := s.session.Input()
	s.form.SetFieldHint(calculator.FieldTargetCurrency.String(), "")
	s.form.SetFieldHint(calculator.FieldTargetTokens.String(), "")
	if in.Target.Stale(in.CurrentPrice) {
		derived := calculator.FieldTargetTokens
		if in.Target.Unit == calculator.UnitTokens {
			derived = calculator.FieldTargetCurrency
		}
		s.form.SetFieldHint(derived.String(),
			fmt.Sprintf("converted at $%s, price is now $%s",
				calculator.FormatNumber(in.Target.Price),
				calculator.FormatNumber(in.CurrentPrice)))
	}

	s.results.SetRows(calculator.ResultRows(s.session.Output()))
}

// SetSize sets the screen dimensions
func (s *CalculatorScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetWidth(style.AdaptiveWidth(width, 40))
	s.results.SetWidth(style.AdaptiveWidth(width, 55))
	s.helpBar.SetWidth(width).SetCompact(width < compactHelpWidth)
}

// Close is called when the screen is popped
func (s *CalculatorScreen) Close() {
	s.logger.Debug("Calculator screen closed", zap.Uint64("revision", s.session.Revision()))
}

// View renders the screen
func (s *CalculatorScreen) View() string {
	in := s.session.Input()
	out := s.session.Output()

	title := style.TitleStyle.Render(fmt.Sprintf("%s Investment Calculator", in.TokenName))

	var results strings.Builder
	results.WriteString(style.SubHeaderStyle.Render("Results"))
	results.WriteString("\n")
	results.WriteString(s.results.View())
	results.WriteString("\n\n")
	results.WriteString(style.InfoStyle.Render(out.BreakEvenNote()))

	body := style.AdaptiveJoinHorizontal(s.width,
		style.ActivePanelStyle.Render(s.form.View()),
		style.PanelStyle.Render(results.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, s.helpBar.View())
}
