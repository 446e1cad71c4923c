package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Navigation (normal mode)
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Mode switching
	StartEdit key.Binding
	StopEdit  key.Binding

	// Actions
	Commit      key.Binding
	Export      key.Binding
	NextPreset  key.Binding
	PrevHistory key.Binding

	// Quit
	Quit      key.Binding
	ForceQuit key.Binding
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/dn", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("C-b", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("C-f", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
	StartEdit: key.NewBinding(
		key.WithKeys("e", "i", "/"),
		key.WithHelp("e", "edit pattern"),
	),
	StopEdit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop editing"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "record pattern"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export captures"),
	),
	NextPreset: key.NewBinding(
		key.WithKeys("p", "tab"),
		key.WithHelp("p", "next preset"),
	),
	PrevHistory: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "previous pattern"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
