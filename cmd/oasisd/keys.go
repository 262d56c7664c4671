package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds key.Binding values for the bindings that don't map onto
// a single tea.KeyType (history recall, quit).
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
	CtrlC key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
