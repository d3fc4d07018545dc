package ui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines keys available regardless of overlay state.
type GlobalKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Dismiss    key.Binding
	Premium    key.Binding
	Simulate   key.Binding
	ChipMode   key.Binding
	SelectMode key.Binding
}

var GlobalKeys = GlobalKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close popover / leave selection"),
	),
	Premium: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle premium"),
	),
	Simulate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle live reactions"),
	),
	ChipMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "full / short chips"),
	),
	SelectMode: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "selection mode"),
	),
}

// ListKeyMap defines keys for the message list.
type ListKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	React      key.Binding
	QuickReact key.Binding
	Unreact    key.Binding
	Select     key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "previous message"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "next message"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("Ctrl+U", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("Ctrl+D", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first message"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last message"),
	),
	React: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "open reactions"),
	),
	QuickReact: key.NewBinding(
		key.WithKeys("+", "enter"),
		key.WithHelp("+", "quick reaction"),
	),
	Unreact: key.NewBinding(
		key.WithKeys("-", "backspace"),
		key.WithHelp("-", "remove my reaction"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "select message"),
	),
}
