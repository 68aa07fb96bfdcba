// Package tui is the interactive front end: a dashboard listing the tasks
// and a new-task form. Every change goes straight through the store, which
// persists it before control returns to the event loop.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/taskbin/internal/model"
	"github.com/Makepad-fr/taskbin/internal/store"
	"github.com/Makepad-fr/taskbin/internal/ui"
)

type screen int

const (
	screenDashboard screen = iota
	screenNewTask
)

const (
	fieldDescription = iota
	fieldDueDate
)

// listItem adapts a task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Description }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.TaskLine(index+1, it.task))
}

// Model is the Bubble Tea model for both screens.
type Model struct {
	store *store.Store
	keys  keyMap

	screen   screen
	list     list.Model
	inputs   [2]textinput.Model
	focus    int
	priority model.Priority

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the model over an already loaded store.
func New(s *store.Store) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(true)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.dashboard
	l.AdditionalFullHelpKeys = keys.dashboard

	desc := textinput.New()
	desc.Prompt = "> "
	desc.Placeholder = "Enter Task Description"
	desc.CharLimit = 1024

	due := textinput.New()
	due.Prompt = "> "
	due.Placeholder = "Due date (optional)"
	due.CharLimit = 64

	m := Model{
		store:  s,
		keys:   keys,
		list:   l,
		inputs: [2]textinput.Model{desc, due},
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// WithNotice shows msg in the status line as a warning until the next action.
func (m Model) WithNotice(msg string) Model {
	if msg != "" {
		m.status, m.statusErr = msg, true
	}
	return m
}

// Run starts the program and saves once more on exit. notice, if set, is
// shown in the status line when the dashboard opens.
func Run(s *store.Store, notice string) error {
	p := tea.NewProgram(New(s).WithNotice(notice), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return s.Save()
}

// refresh reloads the list from the store, keeping the cursor in range.
func (m *Model) refresh() {
	tasks := m.store.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = ui.Header(tasks)
}

func (m *Model) setStatus(msg string, err error) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.status, m.statusErr = msg, false
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.screen == screenNewTask {
		return m.updateNewTask(msg)
	}
	return m.updateDashboard(msg)
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(km, m.keys.New):
			m.screen = screenNewTask
			m.status = ""
			return m, m.focusField(fieldDescription)

		case key.Matches(km, m.keys.Delete):
			if m.store.Len() == 0 {
				return m, nil
			}
			i := m.list.Index()
			err := m.store.Delete(i)
			m.refresh()
			m.setStatus(fmt.Sprintf("deleted task %d", i+1), err)
			return m, nil

		case key.Matches(km, m.keys.Toggle):
			if m.store.Len() == 0 {
				return m, nil
			}
			i := m.list.Index()
			err := m.store.Toggle(i)
			m.refresh()
			m.setStatus(fmt.Sprintf("toggled task %d", i+1), err)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNewTask(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Back):
			m.resetForm()
			m.screen = screenDashboard
			return m, nil

		case key.Matches(km, m.keys.Field):
			return m, m.focusField((m.focus + 1) % len(m.inputs))

		case key.Matches(km, m.keys.Priority):
			m.priority = m.priority.Next()
			return m, nil

		case key.Matches(km, m.keys.Submit):
			desc := strings.TrimSpace(m.inputs[fieldDescription].Value())
			due := strings.TrimSpace(m.inputs[fieldDueDate].Value())
			before := m.store.Len()
			err := m.store.Append(desc, m.priority, due, false)
			m.refresh()
			if m.store.Len() == before {
				// rejected; keep the form as typed
				m.setStatus("", err)
				return m, nil
			}
			m.setStatus("added "+desc, err)
			m.resetForm()
			return m, m.focusField(fieldDescription)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j != i {
			m.inputs[j].Blur()
		}
	}
	return m.inputs[i].Focus()
}

func (m *Model) resetForm() {
	for j := range m.inputs {
		m.inputs[j].SetValue("")
		m.inputs[j].Blur()
	}
	m.focus = fieldDescription
	m.priority = model.PriorityLow
}

func (m Model) View() string {
	var content string
	if m.screen == screenNewTask {
		content = m.newTaskView()
	} else {
		content = m.dashboardView()
	}
	if m.status != "" {
		st := ui.Current().Success
		if m.statusErr {
			st = ui.Current().Error
		}
		content += "\n" + st.Render(m.status)
	}
	return ui.Panel([]string{content})
}

func (m Model) dashboardView() string {
	d, _ := ui.Stats(m.store.Tasks())
	bar := ui.Current().Muted.Render(ui.ProgressBar(d, m.store.Len(), 28))
	return bar + "\n" + m.list.View()
}

func (m Model) newTaskView() string {
	t := ui.Current()
	form := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)

	lines := []string{
		t.Title.Render("New task"),
		"",
		t.Muted.Render("Description"),
		m.inputs[fieldDescription].View(),
		t.Muted.Render("Due date"),
		m.inputs[fieldDueDate].View(),
		"",
		t.Muted.Render("Priority ") + ui.PriorityBadge(m.priority),
	}

	help := make([]string, 0, len(m.keys.newTask()))
	for _, b := range m.keys.newTask() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return form.Render(strings.Join(lines, "\n")) + "\n" + t.Muted.Render(strings.Join(help, " • "))
}
