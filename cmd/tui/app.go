package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
	"github.com/rovshanmuradov/token-calc/internal/ui"
	"github.com/rovshanmuradov/token-calc/internal/ui/router"
	"github.com/rovshanmuradov/token-calc/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	services ui.ServiceProvider
	router   *router.Router
	width    int
	height   int
}

// NewAppModel creates a new application model with the portfolio as root
func NewAppModel(services ui.ServiceProvider) *AppModel {
	return &AppModel{
		services: services,
		router:   router.New(screen.NewPortfolioScreen(services)),
	}
}

// Init opens a first calculator and starts listening to the UI bus
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.ListenBus(),
		ui.Navigate(ui.RouteCalculator, ""),
	)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.router.Update(msg)

	case ui.BusMsg:
		return m, tea.Batch(m.dispatch(msg.Msg), ui.ListenBus())

	default:
		return m, m.dispatch(msg)
	}
}

// dispatch routes navigation requests and fans domain messages out to every
// screen on the stack.
func (m *AppModel) dispatch(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return m.navigate(msg)
	case ui.SnapshotMsg, ui.CalculatorClosedMsg, ui.ExportedMsg, ui.ErrorMsg, ui.SuccessMsg:
		return m.router.Broadcast(msg)
	default:
		return m.router.Update(msg)
	}
}

// navigate handles navigation to different screens
func (m *AppModel) navigate(msg ui.RouterMsg) tea.Cmd {
	switch msg.To {
	case ui.RoutePortfolio:
		var cmds []tea.Cmd
		for m.router.CanGoBack() {
			cmds = append(cmds, m.router.Pop())
		}
		return tea.Batch(cmds...)

	case ui.RouteCalculator:
		var session *calculator.Session
		if msg.SessionID == "" {
			session = m.services.NewSession()
		} else {
			var ok bool
			if session, ok = m.services.GetSession(msg.SessionID); !ok {
				return m.router.Broadcast(ui.ErrorMsg{
					Error: fmt.Errorf("calculator %s is closed", msg.SessionID),
					Title: "Cannot open calculator",
				})
			}
		}
		return m.router.Push(screen.NewCalculatorScreen(m.services, session))

	default:
		return nil
	}
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}
