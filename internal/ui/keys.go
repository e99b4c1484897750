package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the list view.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Tabs
	TabAll       key.Binding
	TabActive    key.Binding
	TabCompleted key.Binding

	// Actions
	Toggle    key.Binding
	ToggleAll key.Binding
	Delete    key.Binding
	Clear     key.Binding
	Edit      key.Binding
	New       key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Text entry
	Confirm key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		TabAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		TabActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		TabCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear completed"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n", "/"),
			key.WithHelp("n", "new todo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Edit, k.Delete, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.New, k.Edit},
		{k.Toggle, k.ToggleAll, k.Delete, k.Clear},
		{k.TabAll, k.TabActive, k.TabCompleted},
		{k.Confirm, k.Escape, k.Help, k.Quit},
	}
}
