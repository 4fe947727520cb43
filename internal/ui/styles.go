package ui

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	errColor  = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	okColor   = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	tabActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(highlight)

	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(subtle)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	doneStyle        = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(subtle)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(okColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errColor)
	helpStyle   = lipgloss.NewStyle().Foreground(subtle)
)
