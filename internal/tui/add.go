package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/todos/internal/ui"
)

// submitAddMsg carries the title entered in the add dialog
type submitAddMsg struct {
	title string
}

// cancelAddMsg is sent when the add dialog is dismissed
type cancelAddMsg struct{}

// addModel is the dialog for entering a new todo title
type addModel struct {
	input textinput.Model
	width int
}

func newAddModel(width int) addModel {
	modalWidth := max(40, min(70, width*60/100))

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = modalWidth - 8
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	ti.Focus()

	return addModel{input: ti, width: modalWidth}
}

func (m addModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m addModel) Update(msg tea.Msg) (addModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			// The server decides whether the title is acceptable.
			title := m.input.Value()
			return m, func() tea.Msg {
				return submitAddMsg{title: title}
			}
		case "esc":
			return m, func() tea.Msg {
				return cancelAddMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m addModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("New Todo")

	footer := helpKeyStyle.Render("enter") + " " + helpStyle.Render("add") + "  " +
		helpKeyStyle.Render("esc") + " " + helpStyle.Render("cancel")

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(m.width)

	return border.Render(title + "\n\n" + m.input.View() + "\n\n" + footer)
}
