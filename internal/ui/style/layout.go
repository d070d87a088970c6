package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(0, 0, 1, 0)
)

// Layout styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2).
			Margin(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(1, 2).
				Margin(0, 1)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Value styles
var (
	GainStyle = lipgloss.NewStyle().
			Foreground(palette.Gain).
			Bold(true)

	LossStyle = lipgloss.NewStyle().
			Foreground(palette.Loss).
			Bold(true)
)

// Signed picks the gain or loss style for a value compared to zero.
func Signed(sign int) lipgloss.Style {
	switch {
	case sign > 0:
		return GainStyle
	case sign < 0:
		return LossStyle
	default:
		return MutedStyle
	}
}

// AdaptiveJoinHorizontal places blocks side by side on wide terminals and
// stacks them on narrow ones.
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AdaptiveWidth returns percentage of width, or nearly all of it on narrow
// terminals.
func AdaptiveWidth(width, percentage int) int {
	if width < 100 {
		return width - 4
	}
	return (width * percentage) / 100
}
