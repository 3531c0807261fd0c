package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	backspace  key.Binding
	quit       key.Binding
	info       key.Binding
	logout     key.Binding
	register   key.Binding
	registerBy key.Binding
	passkey    key.Binding
	sms        key.Binding
	resend     key.Binding
	paste      key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up")),
	down:       key.NewBinding(key.WithKeys("down")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	backspace:  key.NewBinding(key.WithKeys("backspace")),
	quit:       key.NewBinding(key.WithKeys("ctrl+c")),
	info:       key.NewBinding(key.WithKeys("f1")),
	logout:     key.NewBinding(key.WithKeys("l")),
	register:   key.NewBinding(key.WithKeys("ctrl+r")),
	registerBy: key.NewBinding(key.WithKeys("ctrl+t")),
	passkey:    key.NewBinding(key.WithKeys("ctrl+k")),
	sms:        key.NewBinding(key.WithKeys("ctrl+s")),
	resend:     key.NewBinding(key.WithKeys("ctrl+r")),
	paste:      key.NewBinding(key.WithKeys("ctrl+v")),
	yes:        key.NewBinding(key.WithKeys("y", "enter")),
	no:         key.NewBinding(key.WithKeys("n")),
}
