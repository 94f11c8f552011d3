// Package tui is an interactive terminal browser for the todo list, talking
// to a running server through the GraphQL client.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/todos/internal/todo"
	"github.com/hmans/todos/internal/ui"
)

// API is the part of the GraphQL client the TUI needs.
type API interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Add(ctx context.Context, title string) (*todo.Todo, error)
	Complete(ctx context.Context, id string) (*todo.Todo, error)
	Delete(ctx context.Context, id string) (*todo.Todo, error)
}

var (
	helpKeyStyle   = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	listTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Background(ui.ColorPrimary).Padding(0, 1)
)

// viewState represents which view is currently active
type viewState int

const (
	viewList viewState = iota
	viewAdd
	viewHelp
)

// App is the main TUI application model
type App struct {
	state  viewState
	list   listModel
	add    addModel
	help   helpOverlayModel
	width  int
	height int
}

// New creates a new TUI application
func New(ctx context.Context, api API) *App {
	return &App{
		state: viewList,
		list:  newListModel(ctx, api),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The list sits behind every overlay, so it always tracks the size.
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.state == viewList && a.list.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.state = viewHelp
				a.help = newHelpOverlayModel(a.width, a.height)
				return a, nil
			case "a":
				a.state = viewAdd
				a.add = newAddModel(a.width)
				return a, a.add.Init()
			}
		}

	case closeHelpMsg:
		a.state = viewList
		return a, nil

	case submitAddMsg:
		a.state = viewList
		return a, a.list.addTodo(msg.title)

	case cancelAddMsg:
		a.state = viewList
		return a, nil

	case todosLoadedMsg, todoChangedMsg, errMsg:
		// Results of API calls may arrive while an overlay is open.
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	// Forward everything else to the current view
	switch a.state {
	case viewList:
		a.list, cmd = a.list.Update(msg)
	case viewAdd:
		a.add, cmd = a.add.Update(msg)
	case viewHelp:
		a.help, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case viewAdd:
		return overlayModal(a.add.View(), a.width, a.height)
	case viewHelp:
		return overlayModal(a.help.View(), a.width, a.height)
	}
	return a.list.View()
}

// overlayModal centers a modal in the terminal.
func overlayModal(modal string, width, height int) string {
	if width == 0 || height == 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// Run starts the TUI application
func Run(ctx context.Context, api API) error {
	p := tea.NewProgram(New(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
