package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tmc/doublecheck/ui/keymap"
)

// Model wraps the bubbles/help model for integration.
type Model struct {
	inner  help.Model
	keyMap keymap.KeyMap
	Show   bool // Whether the help view is currently visible
}

// New creates a new help model showing the short help line.
func New(km keymap.KeyMap) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		inner:  h,
		keyMap: km,
	}
}

// Init does nothing.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update toggles visibility on '?' and tracks the window width.
// A second '?' while visible switches to the full help before hiding.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.ToggleHelp) {
			switch {
			case !m.Show:
				m.Show = true
				m.inner.ShowAll = false
			case !m.inner.ShowAll:
				m.inner.ShowAll = true
			default:
				m.Show = false
				m.inner.ShowAll = false
			}
		}
	case tea.WindowSizeMsg:
		m.inner.Width = msg.Width
	}
	return m, nil
}

// View renders the help.
func (m Model) View() string {
	if !m.Show {
		return ""
	}
	return m.inner.View(m.keyMap)
}

// ShowAll reports whether the full help is shown.
func (m Model) ShowAll() bool { return m.inner.ShowAll }

// SetWidth updates the width for the help view.
func (m *Model) SetWidth(w int) {
	m.inner.Width = w
}
