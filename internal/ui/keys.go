package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Filter   key.Binding
	Search   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Mark     key.Binding
	NextMark key.Binding
	Clear    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Top:      key.NewBinding(key.WithKeys("g", "home")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
		Filter:   key.NewBinding(key.WithKeys("/")),
		Search:   key.NewBinding(key.WithKeys("s")),
		Next:     key.NewBinding(key.WithKeys("n")),
		Prev:     key.NewBinding(key.WithKeys("N")),
		Mark:     key.NewBinding(key.WithKeys("m")),
		NextMark: key.NewBinding(key.WithKeys("M")),
		Clear:    key.NewBinding(key.WithKeys("esc")),
	}
}
