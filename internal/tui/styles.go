package tui

import (
	"lexreader/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	plainStyle = lipgloss.NewStyle()
)

var wordStyles = map[domain.Color]lipgloss.Style{
	domain.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
	domain.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
	domain.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#55CC55")),
}

// wordStyle returns the style of a word color. Black words use the
// terminal's default foreground.
func wordStyle(c domain.Color) lipgloss.Style {
	if s, ok := wordStyles[c]; ok {
		return s
	}
	return plainStyle
}
