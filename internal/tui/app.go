// Package tui provides the interactive terminal front end over the task
// store. It is the session's single page: every key action invokes one
// store operation, and the visible list always reflects the store's
// current snapshot.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/service"
	"tasklist/internal/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Messages emitted by async store operations.
type (
	tasksMsg []service.Task
	opErrMsg struct{ err error }
)

// App is the Bubble Tea model for the task list.
type App struct {
	store *store.Store

	tasks   []service.Task
	cursor  int
	loading bool
	errText string

	adding bool
	input  textinput.Model

	spin spinner.Model
}

// NewApp creates the TUI model over an existing store.
func NewApp(st *store.Store) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "task title"
	ti.CharLimit = 200

	return &App{
		store: st,
		spin:  sp,
		input: ti,
	}
}

// Init starts the spinner and the initial refresh.
func (a *App) Init() tea.Cmd {
	a.loading = true
	return tea.Batch(a.spin.Tick, a.refreshCmd())
}

func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Refresh(context.Background()); err != nil {
			return opErrMsg{err}
		}
		return tasksMsg(a.store.Tasks())
	}
}

func (a *App) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.ToggleComplete(context.Background(), id); err != nil {
			return opErrMsg{err}
		}
		return tasksMsg(a.store.Tasks())
	}
}

func (a *App) removeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Remove(context.Background(), id); err != nil {
			return opErrMsg{err}
		}
		return tasksMsg(a.store.Tasks())
	}
}

func (a *App) addCmd(title string, done bool) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.store.Add(context.Background(), store.NewTask{Title: title, IsComplete: done}); err != nil {
			return opErrMsg{err}
		}
		return tasksMsg(a.store.Tasks())
	}
}

// Update handles messages and key events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksMsg:
		a.loading = false
		a.errText = ""
		a.tasks = msg
		if a.cursor >= len(a.tasks) {
			a.cursor = len(a.tasks) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case opErrMsg:
		// A failed operation leaves the collection as it was; only the
		// status line changes.
		a.loading = false
		a.errText = msg.err.Error()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.adding {
			return a.updateAdding(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}

	case "r":
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.refreshCmd())

	case " ", "enter":
		if a.cursor < len(a.tasks) {
			a.loading = true
			return a, tea.Batch(a.spin.Tick, a.toggleCmd(a.tasks[a.cursor].ID))
		}

	case "d":
		if a.cursor < len(a.tasks) {
			a.loading = true
			return a, tea.Batch(a.spin.Tick, a.removeCmd(a.tasks[a.cursor].ID))
		}

	case "a":
		a.adding = true
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink
	}

	return a, nil
}

func (a *App) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.adding = false
		a.input.Blur()
		return a, nil

	case "enter", "ctrl+d":
		title := a.input.Value()
		a.adding = false
		a.input.Blur()
		if title == "" {
			return a, nil
		}
		// ctrl+d creates the task already completed
		done := msg.String() == "ctrl+d"
		a.loading = true
		return a, tea.Batch(a.spin.Tick, a.addCmd(title, done))
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the current snapshot.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task List"))
	b.WriteString("\n\n")

	if len(a.tasks) == 0 && !a.loading {
		b.WriteString(statusStyle.Render("no tasks"))
		b.WriteString("\n")
	}

	for i, t := range a.tasks {
		line := "[ ] " + t.Title
		if t.IsComplete {
			line = completeStyle.Render("[x] " + t.Title)
		}
		if i == a.cursor && !a.adding {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.adding:
		b.WriteString("new task: " + a.input.View())
		b.WriteString("\n")
	case a.loading:
		b.WriteString(a.spin.View() + " syncing...")
		b.WriteString("\n")
	case a.errText != "":
		b.WriteString(errorStyle.Render("error: " + a.errText))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space toggle · a add · d delete · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}
