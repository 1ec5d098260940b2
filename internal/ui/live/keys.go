package live

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the live UI bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Pick    key.Binding
	Clear   key.Binding
	Submit  key.Binding
	Retry   key.Binding
	Shuffle key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev question")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next question")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev option")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		Pick:    key.NewBinding(key.WithKeys("a", "b", "c", "d", "A", "B", "C", "D"), key.WithHelp("a-d", "pick option")),
		Clear:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "clear answer")),
		Submit:  key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "submit")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Shuffle: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "shuffle")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Submit, k.Retry, k.Shuffle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Pick, k.Clear, k.Submit},
		{k.Retry, k.Shuffle, k.Help, k.Quit},
	}
}
