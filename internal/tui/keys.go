package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New      key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Back     key.Binding
	Field    key.Binding
	Priority key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		New:      key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new task")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Field:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Priority: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "priority")),
	}
}

// dashboard bindings shown in the list help
func (k keyMap) dashboard() []key.Binding {
	return []key.Binding{k.New, k.Delete, k.Toggle}
}

func (k keyMap) newTask() []key.Binding {
	return []key.Binding{k.Submit, k.Field, k.Priority, k.Back}
}
