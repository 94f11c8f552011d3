package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
)

// Status labels
const (
	StatusOpenLabel = "open"
	StatusDoneLabel = "done"
)

// Status badge styles (for inline use, like in show command)
var (
	StatusOpen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorWarning).
			Padding(0, 1).
			Bold(true)

	StatusDone = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorSuccess).
			Padding(0, 1)
)

// Status text styles (for table use, no background/padding)
var (
	StatusOpenText = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StatusDoneText = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// Text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Muted     = lipgloss.NewStyle().Foreground(ColorMuted)
	Primary   = lipgloss.NewStyle().Foreground(ColorPrimary)
	Success   = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning   = lipgloss.NewStyle().Foreground(ColorWarning)
	Danger    = lipgloss.NewStyle().Foreground(ColorDanger)
	Secondary = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// ID style - distinctive for todo IDs
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Title style
var Title = lipgloss.NewStyle().Bold(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true).
	MarginBottom(1)

// StatusLabel returns the word used for a todo's completion state.
func StatusLabel(completed bool) string {
	if completed {
		return StatusDoneLabel
	}
	return StatusOpenLabel
}

// RenderStatus returns a styled status badge.
func RenderStatus(completed bool) string {
	if completed {
		return StatusDone.Render(StatusDoneLabel)
	}
	return StatusOpen.Render(StatusOpenLabel)
}

// RenderStatusText returns styled status text (for tables, no background).
func RenderStatusText(completed bool) string {
	if completed {
		return StatusDoneText.Render(StatusDoneLabel)
	}
	return StatusOpenText.Render(StatusOpenLabel)
}
