package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Enter key.Binding
	Tab   key.Binding
	Esc   key.Binding

	// Gestures
	Resize  key.Binding
	Create  key.Binding
	Move    key.Binding
	StepLSB key.Binding
	StepMSB key.Binding
	NudgeIn key.Binding
	NudgeUp key.Binding

	// Bit editing
	ToggleBit key.Binding
	ClearBit  key.Binding
	SetBit    key.Binding

	// Commands
	Value  key.Binding
	Rename key.Binding
	Copy   key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous register"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next register"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "cursor toward msb"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "cursor toward lsb"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "cursor to msb"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "cursor to lsb"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),

		// Actions
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit gesture"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		// Gestures
		Resize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "drag field edge"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new field in gap"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move field"),
		),
		StepLSB: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "swap toward lsb"),
		),
		StepMSB: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "swap toward msb"),
		),
		NudgeIn: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "nudge lsb edge"),
		),
		NudgeUp: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "nudge msb edge"),
		),

		// Bit editing
		ToggleBit: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle bit"),
		),
		ClearBit: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear bit"),
		),
		SetBit: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "set bit"),
		),

		// Commands
		Value: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "enter value"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename field"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy value"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.Quit,
	}
}

// FullHelp returns all key bindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Resize, k.Move, k.Create, k.Quit},
	}
}
