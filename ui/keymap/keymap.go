package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for confirm controls and the session around them.
// Using bubbles/key allows for help generation and context-aware enabling.
type KeyMap struct {
	// Control
	Activate key.Binding // Enter / Space on the focused button
	Cancel   key.Binding // Esc disarms the focused button

	// Focus
	Next key.Binding // Tab
	Prev key.Binding // Shift+Tab

	// Application Control
	Quit       key.Binding
	ToggleHelp key.Binding // ?
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "press")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),

		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	}
}

// WithActivateKeys returns a copy of km whose Activate binding uses keys.
// An empty list keeps the current binding.
func (km KeyMap) WithActivateKeys(keys ...string) KeyMap {
	if len(keys) > 0 {
		km.Activate = key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), "press"))
	}
	return km
}

// WithCancelKeys returns a copy of km whose Cancel binding uses keys.
// An empty list keeps the current binding.
func (km KeyMap) WithCancelKeys(keys ...string) KeyMap {
	if len(keys) > 0 {
		km.Cancel = key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), "cancel"))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Activate, km.Cancel, km.Next, km.Quit, km.ToggleHelp}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Activate, km.Cancel},
		{km.Next, km.Prev},
		{km.Quit, km.ToggleHelp},
	}
}

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// Conflicts returns the activate and cancel keys that are also bound to a
// session action. While the button has focus those keys go to the button.
func (km KeyMap) Conflicts() []string {
	session := make(map[string]bool)
	for _, b := range []key.Binding{km.Next, km.Prev, km.Quit, km.ToggleHelp} {
		for _, k := range b.Keys() {
			session[k] = true
		}
	}
	var out []string
	for _, b := range []key.Binding{km.Activate, km.Cancel} {
		for _, k := range b.Keys() {
			if session[k] {
				out = append(out, k)
			}
		}
	}
	return out
}
