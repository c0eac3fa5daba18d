package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	SoftDrop key.Binding
	Rotate   key.Binding
	Hold     key.Binding
	Drop     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Export   key.Binding
	Menu     key.Binding
	Quit     key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		SoftDrop: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "soft drop")),
		Rotate:   key.NewBinding(key.WithKeys("up", "k", "x"), key.WithHelp("↑/x", "rotate")),
		Hold:     key.NewBinding(key.WithKeys("e", "c"), key.WithHelp("e/c", "hold")),
		Drop:     key.NewBinding(key.WithKeys("q", " ", "space"), key.WithHelp("q/space", "quick drop")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Export:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save png")),
		Menu:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
	}
}

// gameKeys is the help.KeyMap shown beside the well.
type gameKeys keyMap

func (k gameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.Drop, k.Hold, k.Pause}
}

func (k gameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.Rotate},
		{k.Drop, k.Hold, k.Pause, k.Restart},
		{k.Export, k.Menu, k.Quit},
	}
}

// overKeys is the help.KeyMap for the game over screen.
type overKeys keyMap

func (k overKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Copy, k.Export, k.Menu}
}

func (k overKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
