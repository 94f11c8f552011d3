package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/todos/internal/todo"
)

const (
	statusColWidth = 10
	titleColWidth  = 60
)

// RenderTable renders todos as an aligned table with a header row.
func RenderTable(todos []todo.Todo) string {
	var sb strings.Builder

	idWidth := 2
	for _, t := range todos {
		idWidth = max(idWidth, len(t.ID))
	}
	idWidth += 2

	idStyle := lipgloss.NewStyle().Width(idWidth)
	statusStyle := lipgloss.NewStyle().Width(statusColWidth)
	headerCol := lipgloss.NewStyle().Foreground(ColorMuted)

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(headerCol.Render("ID")),
		statusStyle.Render(headerCol.Render("STATUS")),
		headerCol.Render("TITLE"),
	))
	sb.WriteString("\n")
	sb.WriteString(Muted.Render(strings.Repeat("─", idWidth+statusColWidth+titleColWidth)))
	sb.WriteString("\n")

	for _, t := range todos {
		title := truncateString(t.Title, titleColWidth)
		if t.IsCompleted {
			title = Muted.Render(title)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(ID.Render(t.ID)),
			statusStyle.Render(RenderStatusText(t.IsCompleted)),
			title,
		))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderDetail renders a single todo for the show command.
func RenderDetail(t todo.Todo) string {
	var sb strings.Builder
	sb.WriteString(ID.Render(t.ID))
	sb.WriteString(" ")
	sb.WriteString(RenderStatus(t.IsCompleted))
	sb.WriteString("\n")
	sb.WriteString(Title.Render(t.Title))
	sb.WriteString("\n")
	return sb.String()
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
