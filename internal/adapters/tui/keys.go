package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Previous   key.Binding
	Next       key.Binding
	NextTab    key.Binding
	Copy       key.Binding
	Regenerate key.Binding
	New        key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Previous:   key.NewBinding(key.WithKeys("left", "up", "h", "k"), key.WithHelp("←", "previous option")),
		Next:       key.NewBinding(key.WithKeys("right", "down", "l", "j", " "), key.WithHelp("→", "next option")),
		NextTab:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next tab")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Regenerate: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regenerate")),
		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp lists the bindings shown under the page.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Next, k.NextTab, k.Copy, k.Regenerate, k.New, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Regenerate, k.New},
		{k.NextField, k.PrevField, k.Previous, k.Next},
		{k.NextTab, k.Copy, k.Quit},
	}
}
