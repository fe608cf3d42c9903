package viewer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Select      key.Binding
	Hide        key.Binding
	HideAll     key.Binding
	Reveal      key.Binding
	RevealAll   key.Binding
	HideGaps    key.Binding
	Yank        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		ScrollLeft:  key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "scroll right")),
		Select:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select column")),
		Hide:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide column")),
		HideAll:     key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "hide selection")),
		Reveal:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal here")),
		RevealAll:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reveal all")),
		HideGaps:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "hide row gaps")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Hide, k.Reveal, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.ScrollLeft, k.ScrollRight},
		{k.Select, k.Hide, k.HideAll, k.HideGaps},
		{k.Reveal, k.RevealAll, k.Yank, k.Help, k.Quit},
	}
}
