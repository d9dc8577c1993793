package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the editor's bindings. Edit-field keys are checked first
// while a token is being edited.
type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Click   key.Binding
	Edit    key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Quit    key.Binding
	Commit  key.Binding
	Discard key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Click:   key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "toggle")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:  key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Discard: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}

func (k keyMap) navHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→↑↓", "move")),
		k.Click, k.Edit, k.Save, k.Cancel,
	}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Discard, k.Save}
}
