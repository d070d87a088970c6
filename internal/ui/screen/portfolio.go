package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/export"
	"github.com/rovshanmuradov/token-calc/internal/portfolio"
	"github.com/rovshanmuradov/token-calc/internal/ui"
	"github.com/rovshanmuradov/token-calc/internal/ui/component"
	"github.com/rovshanmuradov/token-calc/internal/ui/router"
	"github.com/rovshanmuradov/token-calc/internal/ui/style"
)

// compactHelpWidth is the terminal width under which help shows keys only.
const compactHelpWidth = 60

// PortfolioScreen lists the open calculators with portfolio totals.
type PortfolioScreen struct {
	services ui.ServiceProvider
	keyMap   ui.KeyMap
	width    int
	height   int

	table   *component.Table
	helpBar *component.HelpBar
	logPane *component.LogPane

	// Session IDs in table row order
	sessionIDs   []string
	summary      portfolio.Summary
	onlyTargeted bool

	status      string
	statusStyle lipgloss.Style
}

// NewPortfolioScreen creates the portfolio screen
func NewPortfolioScreen(services ui.ServiceProvider) *PortfolioScreen {
	keyMap := ui.DefaultKeyMap()

	table := component.NewTable(
		component.TableColumn{Header: "Token", Width: 10},
		component.TableColumn{Header: "Price ($)", Align: lipgloss.Right},
		component.TableColumn{Header: "Invested ($)", Align: lipgloss.Right},
		component.TableColumn{Header: "Target ($)", Align: lipgloss.Right},
		component.TableColumn{Header: "Future Value ($)", Align: lipgloss.Right},
	).SetSelectable(true)

	s := &PortfolioScreen{
		services: services,
		keyMap:   keyMap,
		table:    table,
		helpBar:  component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RoutePortfolio)),
		logPane:  component.NewLogPane(services.GetLogs()),
	}
	s.refresh()
	return s
}

// Init initializes the screen
func (s *PortfolioScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

// Update handles messages
func (s *PortfolioScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	pf := s.services.GetPortfolio()

	switch msg := msg.(type) {
	case ui.SnapshotMsg:
		// Handlers on the bus run in no fixed order, so the screen applies
		// the snapshot itself before reading the portfolio back.
		pf.Upsert(msg.Snapshot)
		s.refresh()

	case ui.CalculatorClosedMsg:
		pf.Remove(msg.SessionID)
		s.refresh()

	case ui.ExportedMsg:
		s.setStatus(fmt.Sprintf("Exported %d calculator(s) to %s", msg.Count, msg.Path), style.SuccessStyle)

	case ui.SuccessMsg:
		s.setStatus(msg.Message, style.SuccessStyle)

	case ui.ErrorMsg:
		st := style.ErrorStyle
		if errors.Is(msg.Error, context.Canceled) {
			st = style.WarningStyle
		}
		s.setStatus(fmt.Sprintf("%s: %v", msg.Title, msg.Error), st)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	return s, nil
}

func (s *PortfolioScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Up):
		s.table.MoveUp()
	case key.Matches(msg, s.keyMap.Down):
		s.table.MoveDown()
	case key.Matches(msg, s.keyMap.NewCalculator):
		return ui.Navigate(ui.RouteCalculator, "")
	case key.Matches(msg, s.keyMap.Enter):
		if id, ok := s.selectedID(); ok {
			return ui.Navigate(ui.RouteCalculator, id)
		}
	case key.Matches(msg, s.keyMap.DeleteCalculator):
		if id, ok := s.selectedID(); ok {
			if err := s.services.CloseSession(id); err != nil {
				s.setStatus(err.Error(), style.ErrorStyle)
			}
		}
	case key.Matches(msg, s.keyMap.OnlyTargeted):
		s.onlyTargeted = !s.onlyTargeted
		s.setStatus(fmt.Sprintf("Export targeted calculators only: %t", s.onlyTargeted), style.InfoStyle)
	case key.Matches(msg, s.keyMap.ExportCSV):
		return s.exportCmd(export.FormatCSV)
	case key.Matches(msg, s.keyMap.ExportJSON):
		return s.exportCmd(export.FormatJSON)
	}
	return nil
}

// exportCmd writes the file off the update loop; the bus reports success.
func (s *PortfolioScreen) exportCmd(format export.ExportFormat) tea.Cmd {
	services, onlyTargeted := s.services, s.onlyTargeted
	return func() tea.Msg {
		if err := services.GetContext().Err(); err != nil {
			return ui.ErrorMsg{Error: err, Title: "Export cancelled"}
		}
		if _, err := services.Export(format, onlyTargeted); err != nil {
			services.GetLogger().Warn("Export failed", zap.Error(err))
			return ui.ErrorMsg{Error: err, Title: "Export failed"}
		}
		return nil
	}
}

func (s *PortfolioScreen) selectedID() (string, bool) {
	row := s.table.SelectedRow()
	if row < 0 || row >= len(s.sessionIDs) {
		return "", false
	}
	return s.sessionIDs[row], true
}

func (s *PortfolioScreen) setStatus(text string, st lipgloss.Style) {
	s.status = text
	s.statusStyle = st
}

// refresh rebuilds the table and totals from the portfolio
func (s *PortfolioScreen) refresh() {
	snaps := s.services.GetPortfolio().Snapshots()

	rows := make([][]string, 0, len(snaps))
	s.sessionIDs = s.sessionIDs[:0]
	for _, snap := range snaps {
		s.sessionIDs = append(s.sessionIDs, snap.SessionID)
		rows = append(rows, []string{
			snap.Input.TokenName,
			calculator.FormatNumber(snap.Input.CurrentPrice),
			calculator.FormatNumber(snap.Input.InvestmentAmount),
			calculator.FormatOptional(snap.TargetCurrency),
			calculator.FormatOptional(snap.Output.FutureValue),
		})
	}
	s.table.SetRows(rows)
	s.summary = portfolio.Summarize(snaps)
}

// SetSize sets the screen dimensions
func (s *PortfolioScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetWidth(width - 4)
	s.helpBar.SetWidth(width).SetCompact(width < compactHelpWidth)
	s.logPane.SetSize(width-4, 8)
}

// View renders the screen
func (s *PortfolioScreen) View() string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("Token Investment Calculator"))
	b.WriteString("\n")

	if s.table.RowCount() == 0 {
		b.WriteString(style.MutedStyle.Render("No calculators yet. Press n to open one."))
	} else {
		b.WriteString(s.table.View())
	}
	b.WriteString("\n")
	b.WriteString(s.summaryView())

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(s.statusStyle.Render(s.status))
	}

	b.WriteString("\n")
	b.WriteString(s.logPane.View())
	b.WriteString(s.helpBar.View())

	return b.String()
}

func (s *PortfolioScreen) summaryView() string {
	sum := s.summary
	gain := style.Signed(sum.ProjectedGain.Sign()).Render(sum.ProjectedGain.StringFixed(2))

	return style.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		style.SubHeaderStyle.Render("Portfolio"),
		fmt.Sprintf("Calculators: %d (%d with target)", sum.Calculators, sum.Targeted),
		fmt.Sprintf("Total invested: $%s", sum.TotalInvested.StringFixed(2)),
		fmt.Sprintf("Projected value: $%s", sum.ProjectedValue.StringFixed(2)),
		fmt.Sprintf("Projected gain: $%s (%s%%)", gain, sum.ProjectedReturn().StringFixed(2)),
		fmt.Sprintf("Value after unlocks: $%s", sum.PostUnlockValue.StringFixed(2)),
	))
}
