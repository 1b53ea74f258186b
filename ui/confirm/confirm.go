// Package confirm provides a Bubble Tea button that must be pressed twice.
//
// The first press arms the button and swaps its label; the second press fires
// the caller's handler and emits a PressedMsg. Blurring the button or pressing
// the cancel key disarms it.
package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tmc/doublecheck"
	"github.com/tmc/doublecheck/ui/keymap"
)

// Default labels.
const (
	DefaultIdleLabel  = "Click me"
	DefaultArmedLabel = "You sure?"
)

// Activation sources reported in ActivateEvent.Source.
const (
	SourceKey   = "key"
	SourceMouse = "mouse"
)

// ActivatedMsg is emitted for every activation of a button, armed or not.
type ActivatedMsg struct {
	ID               string
	Source           string
	DefaultPrevented bool
	Armed            bool
}

// PressedMsg is emitted when a confirmed activation fires.
type PressedMsg struct {
	ID     string
	Source string
}

// Styles holds the button styles. Focused is layered over Idle or Armed.
type Styles struct {
	Idle    lipgloss.Style
	Armed   lipgloss.Style
	Focused lipgloss.Style
}

// DefaultStyles returns the default button styles.
func DefaultStyles() Styles {
	return Styles{
		Idle:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		Armed:   lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("124")).Bold(true),
		Focused: lipgloss.NewStyle().Underline(true),
	}
}

// Model is a confirm button.
type Model struct {
	id         string
	idleLabel  string
	armedLabel string
	styles     Styles
	keyMap     keymap.KeyMap
	overrides  doublecheck.Handlers
	observer   func(from, to doublecheck.State)
	logger     *zap.Logger

	gesture *doublecheck.Gesture
	focused bool
	x, y    int
}

// Option configures a Model.
type Option func(*Model)

// WithLabels sets the idle and armed labels. Empty strings keep the defaults.
func WithLabels(idle, armed string) Option {
	return func(m *Model) {
		if idle != "" {
			m.idleLabel = idle
		}
		if armed != "" {
			m.armedLabel = armed
		}
	}
}

// WithKeyMap sets the key map. Its Cancel keys disarm the button.
func WithKeyMap(km keymap.KeyMap) Option {
	return func(m *Model) { m.keyMap = km }
}

// WithStyles sets the button styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithOnPress sets the handler run on a confirmed activation.
func WithOnPress(fn func(*doublecheck.ActivateEvent)) Option {
	return func(m *Model) { m.overrides.OnActivate = fn }
}

// WithOnBlur sets the handler run whenever the button loses focus.
func WithOnBlur(fn func(*doublecheck.BlurEvent)) Option {
	return func(m *Model) { m.overrides.OnBlur = fn }
}

// WithOnKeyUp sets the handler run for every key the focused button receives.
func WithOnKeyUp(fn func(*doublecheck.KeyEvent)) Option {
	return func(m *Model) { m.overrides.OnKeyUp = fn }
}

// WithObserver is called after every gesture state change.
func WithObserver(fn func(from, to doublecheck.State)) Option {
	return func(m *Model) {
		prev := m.observer
		m.observer = func(from, to doublecheck.State) {
			if prev != nil {
				prev(from, to)
			}
			fn(from, to)
		}
	}
}

// New creates an unfocused, idle button.
func New(id string, opts ...Option) Model {
	m := Model{
		id:         id,
		idleLabel:  DefaultIdleLabel,
		armedLabel: DefaultArmedLabel,
		styles:     DefaultStyles(),
		keyMap:     keymap.DefaultKeyMap(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.logger = m.logger.With(zap.String("button", id))
	gopts := []doublecheck.Option{
		doublecheck.WithCancelKeys(m.keyMap.Cancel.Keys()...),
		doublecheck.WithLogger(m.logger),
	}
	if m.observer != nil {
		gopts = append(gopts, doublecheck.WithObserver(m.observer))
	}
	m.gesture = doublecheck.New(gopts...)
	return m
}

// ID returns the button id.
func (m Model) ID() string { return m.id }

// Armed reports whether the next activation fires.
func (m Model) Armed() bool { return m.gesture.Armed() }

// State returns the gesture state.
func (m Model) State() doublecheck.State { return m.gesture.State() }

// Focused reports whether the button has focus.
func (m Model) Focused() bool { return m.focused }

// Focus gives the button focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus and disarms the button.
func (m *Model) Blur() {
	if !m.focused {
		return
	}
	m.focused = false
	m.gesture.ControlProps(m.overrides).OnBlur(&doublecheck.BlurEvent{})
}

// Reset disarms the button without running the blur handlers. Focus is kept.
func (m *Model) Reset() { m.gesture.Reset() }

// Handles reports whether k is one of the button's own activate or cancel keys.
func (m Model) Handles(k tea.KeyMsg) bool {
	return key.Matches(k, m.keyMap.Activate) || m.gesture.IsCancelKey(k.String())
}

// SetOrigin records where the button is drawn, for mouse hit testing.
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// Contains reports whether the cell (x, y) lies on the rendered button.
func (m Model) Contains(x, y int) bool {
	v := m.View()
	w, h := lipgloss.Width(v), lipgloss.Height(v)
	return x >= m.x && x < m.x+w && y >= m.y && y < m.y+h
}

// Init does nothing.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and mouse input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		var cmd tea.Cmd
		if key.Matches(msg, m.keyMap.Activate) {
			cmd = m.activate(SourceKey)
		}
		m.gesture.ControlProps(m.overrides).OnKeyUp(&doublecheck.KeyEvent{Key: msg.String()})
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.Contains(msg.X, msg.Y) {
			m.Focus()
			return m, m.activate(SourceMouse)
		}
		m.Blur()
	}
	return m, nil
}

func (m Model) activate(source string) tea.Cmd {
	var fired bool
	overrides := m.overrides
	overrides.OnActivate = func(e *doublecheck.ActivateEvent) {
		fired = true
		if m.overrides.OnActivate != nil {
			m.overrides.OnActivate(e)
		}
	}

	e := &doublecheck.ActivateEvent{Source: source}
	m.gesture.ControlProps(overrides).OnActivate(e)
	m.logger.Debug("activated",
		zap.String("source", source),
		zap.Bool("defaultPrevented", e.DefaultPrevented()),
		zap.Bool("fired", fired))

	cmds := []tea.Cmd{msgCmd(ActivatedMsg{
		ID:               m.id,
		Source:           source,
		DefaultPrevented: e.DefaultPrevented(),
		Armed:            m.gesture.Armed(),
	})}
	if fired {
		cmds = append(cmds, msgCmd(PressedMsg{ID: m.id, Source: source}))
	}
	return tea.Batch(cmds...)
}

// View renders the button.
func (m Model) View() string {
	label, style := m.idleLabel, m.styles.Idle
	if m.gesture.Armed() {
		label, style = m.armedLabel, m.styles.Armed
	}
	if m.focused {
		style = style.Inherit(m.styles.Focused)
	}
	return style.Render(label)
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
