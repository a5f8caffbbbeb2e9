package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Open       key.Binding
	Unfamiliar key.Binding
	Learning   key.Binding
	Familiar   key.Binding
	Books      key.Binding
	Vocabulary key.Binding
	Refresh    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev word"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next word"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/translate"),
		),
		Unfamiliar: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "unfamiliar"),
		),
		Learning: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "learning"),
		),
		Familiar: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "familiar"),
		),
		Books: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "books"),
		),
		Vocabulary: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "vocabulary"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
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

// bindings adapts a list of bindings to help.KeyMap
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) forView(v view) bindings {
	switch v {
	case viewReading:
		return bindings{k.Left, k.Right, k.Up, k.Down, k.Open, k.Unfamiliar, k.Learning, k.Familiar, k.Vocabulary, k.Books, k.Quit}
	case viewVocabulary:
		return bindings{k.Refresh, k.Back, k.Quit}
	default:
		return bindings{k.Up, k.Down, k.Open, k.Refresh, k.Vocabulary, k.Quit}
	}
}
