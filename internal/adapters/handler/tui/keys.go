package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
	Clear   key.Binding
	Timer   key.Binding
	Reset   key.Binding
	AutoLog key.Binding
	Analyze key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:  key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "add / start")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Remove:  key.NewBinding(key.WithKeys("ctrl+d", "delete"), key.WithHelp("ctrl+d", "remove selected")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear all")),
		Timer:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "start/pause timer")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset timer")),
		AutoLog: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "toggle auto-log")),
		Analyze: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "analyze")),
		Reload:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "reload csv")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Timer, k.Remove, k.Analyze, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Up, k.Down},
		{k.Timer, k.Reset, k.AutoLog},
		{k.Remove, k.Clear, k.Reload, k.Analyze},
		{k.Help, k.Quit},
	}
}
