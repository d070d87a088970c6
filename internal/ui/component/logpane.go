package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/rovshanmuradov/token-calc/internal/logger"
	"github.com/rovshanmuradov/token-calc/internal/ui/style"
)

const logPaneEntries = 50

// LogPane shows the most recent entries of a log ring.
type LogPane struct {
	ring     *logger.Ring
	viewport viewport.Model
	minLevel zapcore.Level
	width    int
	height   int
	title    string

	containerStyle lipgloss.Style
	titleStyle     lipgloss.Style
	timestampStyle lipgloss.Style
	levelStyles    map[zapcore.Level]lipgloss.Style
}

// NewLogPane creates a pane reading from ring. A nil ring renders a
// placeholder.
func NewLogPane(ring *logger.Ring) *LogPane {
	palette := style.DefaultPalette()

	return &LogPane{
		ring:     ring,
		viewport: viewport.New(50, 4),
		minLevel: zapcore.InfoLevel,
		title:    "Recent Logs",

		containerStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Info).
			Padding(0, 1).
			MarginTop(1),
		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Info).
			Bold(true),
		timestampStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
		levelStyles: map[zapcore.Level]lipgloss.Style{
			zapcore.DebugLevel: lipgloss.NewStyle().Foreground(palette.TextMuted),
			zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(palette.Info),
			zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(palette.Warning).Bold(true),
			zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
		},
	}
}

// SetMinLevel hides entries below level.
func (lp *LogPane) SetMinLevel(level zapcore.Level) {
	lp.minLevel = level
}

// SetSize sets the component dimensions
func (lp *LogPane) SetSize(width, height int) {
	lp.width = width
	lp.height = height

	lp.viewport.Width = max(width-4, 10)
	lp.viewport.Height = max(height-3, 2)
}

// Update handles viewport scrolling
func (lp *LogPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lp.viewport, cmd = lp.viewport.Update(msg)
	return cmd
}

// View renders the pane
func (lp *LogPane) View() string {
	lp.refresh()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		lp.titleStyle.Render(lp.title),
		lp.viewport.View(),
	)
	return lp.containerStyle.Render(content)
}

// Lines returns the rendered entries that pass the level filter, oldest
// first.
func (lp *LogPane) Lines() []string {
	if lp.ring == nil {
		return nil
	}

	var lines []string
	for _, entry := range lp.ring.Recent(logPaneEntries) {
		if entry.Level < lp.minLevel {
			continue
		}
		lines = append(lines, lp.format(entry))
	}
	return lines
}

func (lp *LogPane) refresh() {
	if lp.ring == nil {
		lp.viewport.SetContent("No log buffer available")
		return
	}

	lines := lp.Lines()
	if len(lines) == 0 {
		lp.viewport.SetContent("No log entries yet")
		return
	}

	lp.viewport.SetContent(strings.Join(lines, "\n"))
	lp.viewport.GotoBottom()
}

func (lp *LogPane) format(entry logger.LogEntry) string {
	msgStyle, ok := lp.levelStyles[entry.Level]
	if !ok {
		msgStyle = lp.levelStyles[zapcore.ErrorLevel]
	}
	return fmt.Sprintf("%s %s",
		lp.timestampStyle.Render(entry.Timestamp.Format("15:04:05")),
		msgStyle.Render(entry.Message))
}
