package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/todos/internal/ui"
)

// closeHelpMsg is sent when the help overlay is closed
type closeHelpMsg struct{}

// helpOverlayModel displays keyboard shortcuts
type helpOverlayModel struct {
	width  int
	height int
}

func newHelpOverlayModel(width, height int) helpOverlayModel {
	return helpOverlayModel{
		width:  width,
		height: height,
	}
}

func (m helpOverlayModel) Update(msg tea.Msg) (helpOverlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "?", "esc", "q":
			return m, func() tea.Msg {
				return closeHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m helpOverlayModel) View() string {
	// Calculate modal dimensions
	modalWidth := max(50, min(70, m.width*60/100))

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("Keyboard Shortcuts")

	// Helper to create a shortcut line
	shortcut := func(key, desc string) string {
		keyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Width(16).
			Render(key)
		return keyStyle + desc
	}

	var content strings.Builder
	content.WriteString(title + "\n\n")
	content.WriteString(shortcut("j/k, ↓/↑", "Navigate up/down") + "\n")
	content.WriteString(shortcut("a", "Add a todo") + "\n")
	content.WriteString(shortcut("enter, x", "Mark as completed") + "\n")
	content.WriteString(shortcut("d", "Delete") + "\n")
	content.WriteString(shortcut("r", "Reload from server") + "\n")
	content.WriteString(shortcut("/", "Filter list") + "\n")
	content.WriteString(shortcut("esc", "Clear filter") + "\n")
	content.WriteString(shortcut("q", "Quit") + "\n\n")

	// Footer
	footer := helpKeyStyle.Render("?/esc") + " " + helpStyle.Render("close")

	// Border style
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(modalWidth)

	return border.Render(content.String() + footer)
}
