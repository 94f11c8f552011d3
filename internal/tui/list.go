package tui

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/todos/internal/client"
	"github.com/hmans/todos/internal/todo"
	"github.com/hmans/todos/internal/ui"
)

// todoItem wraps a Todo to implement list.Item
type todoItem struct {
	todo todo.Todo
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return i.todo.ID + " · " + ui.StatusLabel(i.todo.IsCompleted) }
func (i todoItem) FilterValue() string { return i.todo.Title + " " + i.todo.ID }

const statusWidth = 8

// itemDelegate handles rendering of list items
type itemDelegate struct {
	idWidth int
}

func newItemDelegate(todos []todo.Todo) itemDelegate {
	w := 4
	for _, t := range todos {
		w = max(w, lipgloss.Width(t.ID)+2)
	}
	return itemDelegate{idWidth: w}
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(todoItem)
	if !ok {
		return
	}

	idCol := lipgloss.NewStyle().Width(d.idWidth).Render(ui.ID.Render(item.todo.ID))
	statusCol := lipgloss.NewStyle().Width(statusWidth).Render(ui.RenderStatusText(item.todo.IsCompleted))

	title := truncate(item.todo.Title, m.Width()-d.idWidth-statusWidth-4)

	var str string
	if index == m.Index() {
		cursor := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render("▌")
		titleStyled := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render(title)
		str = cursor + " " + idCol + statusCol + titleStyled
	} else {
		titleStyle := lipgloss.NewStyle()
		if item.todo.IsCompleted {
			titleStyle = titleStyle.Foreground(ui.ColorMuted)
		}
		str = "  " + idCol + statusCol + titleStyle.Render(title)
	}

	fmt.Fprint(w, str)
}

// truncate shortens s to at most width runes. A width below 4 leaves s alone.
func truncate(s string, width int) string {
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// listModel is the model for the todo list view
type listModel struct {
	list   list.Model
	api    API
	ctx    context.Context
	width  int
	height int
	status string
	err    error
}

func newListModel(ctx context.Context, api API) listModel {
	l := list.New([]list.Item{}, newItemDelegate(nil), 0, 0)
	l.Title = "Todos"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = listTitleStyle
	l.Styles.TitleBar = lipgloss.NewStyle().Padding(0, 0, 1, 2)
	l.Styles.FilterPrompt = lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	l.Styles.FilterCursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return listModel{
		list: l,
		api:  api,
		ctx:  ctx,
	}
}

// todosLoadedMsg is sent when the list has been fetched
type todosLoadedMsg struct {
	todos []todo.Todo
}

// todoChangedMsg is sent after a mutation succeeded
type todoChangedMsg struct {
	verb string
	todo *todo.Todo
}

// errMsg is sent when an API call fails. Failed loads are fatal to the view,
// failed mutations are reported in the status line.
type errMsg struct {
	err   error
	fatal bool
}

func (m listModel) Init() tea.Cmd {
	return m.loadTodos
}

func (m listModel) loadTodos() tea.Msg {
	todos, err := m.api.List(m.ctx)
	if err != nil {
		return errMsg{err: err, fatal: true}
	}
	return todosLoadedMsg{todos}
}

// mutate runs fn in the background and reports the outcome as verb.
func (m listModel) mutate(verb string, fn func(context.Context) (*todo.Todo, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		t, err := fn(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return todoChangedMsg{verb: verb, todo: t}
	}
}

func (m listModel) addTodo(title string) tea.Cmd {
	return m.mutate("Added", func(ctx context.Context) (*todo.Todo, error) {
		return m.api.Add(ctx, title)
	})
}

func (m listModel) completeTodo(id string) tea.Cmd {
	return m.mutate("Completed", func(ctx context.Context) (*todo.Todo, error) {
		return m.api.Complete(ctx, id)
	})
}

func (m listModel) deleteTodo(id string) tea.Cmd {
	return m.mutate("Deleted", func(ctx context.Context) (*todo.Todo, error) {
		return m.api.Delete(ctx, id)
	})
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for border, footer and status line
		m.list.SetSize(msg.Width-2, msg.Height-5)

	case todosLoadedMsg:
		sortTodos(msg.todos)
		items := make([]list.Item, len(msg.todos))
		for i, t := range msg.todos {
			items[i] = todoItem{todo: t}
		}
		m.list.SetDelegate(newItemDelegate(msg.todos))
		m.err = nil
		return m, m.list.SetItems(items)

	case todoChangedMsg:
		m.status = ui.Success.Render(msg.verb) + " " + ui.ID.Render(msg.todo.ID) + " " + msg.todo.Title
		return m, m.loadTodos

	case errMsg:
		if msg.fatal {
			m.err = msg.err
			return m, nil
		}
		m.status = ui.Danger.Render(client.Message(msg.err))
		return m, m.loadTodos

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "r":
				m.status = ""
				return m, m.loadTodos
			case "enter", "x":
				if item, ok := m.list.SelectedItem().(todoItem); ok {
					return m, m.completeTodo(item.todo.ID)
				}
				return m, nil
			case "d":
				if item, ok := m.list.SelectedItem().(todoItem); ok {
					return m, m.deleteTodo(item.todo.ID)
				}
				return m, nil
			}
		}
	}

	// Always forward to the list component
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %s\n\nPress r to retry or q to quit.", client.Message(m.err))
	}

	if m.width == 0 {
		return "Loading..."
	}

	// Simple bordered container
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(m.width - 2).
		Height(m.height - 5)

	content := border.Render(m.list.View())

	// Footer
	help := helpKeyStyle.Render("a") + " " + helpStyle.Render("add") + "  " +
		helpKeyStyle.Render("x") + " " + helpStyle.Render("complete") + "  " +
		helpKeyStyle.Render("d") + " " + helpStyle.Render("delete") + "  " +
		helpKeyStyle.Render("/") + " " + helpStyle.Render("filter") + "  " +
		helpKeyStyle.Render("?") + " " + helpStyle.Render("help") + "  " +
		helpKeyStyle.Render("q") + " " + helpStyle.Render("quit")

	return content + "\n" + m.status + "\n" + help
}

// sortTodos puts open todos before completed ones, keeping creation order within each group.
func sortTodos(todos []todo.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return !todos[i].IsCompleted && todos[j].IsCompleted
	})
}
