package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/yunhang/cloudnav/internal/i18n"
)

type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Enter        key.Binding
	Escape       key.Binding
	New          key.Binding
	Delete       key.Binding
	Pin          key.Binding
	Search       key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Login        key.Binding
	Theme        key.Binding
	Quit         key.Binding
}

func NewKeyMap() KeyMap {
	t := i18n.T()
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", t.KeyUp),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", t.KeyDown),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", t.KeyOpen),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", t.KeyEscape),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", t.KeyNew),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", t.KeyDelete),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", t.KeyPin),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/", t.KeySearch),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", t.KeyCategory),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", t.KeyCategory),
		),
		Login: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", t.KeyLogin),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", t.KeyTheme),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", t.KeyQuit),
		),
	}
}
