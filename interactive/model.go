package interactive

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tmc/doublecheck"
	"github.com/tmc/doublecheck/ui/confirm"
	"github.com/tmc/doublecheck/ui/debug"
	"github.com/tmc/doublecheck/ui/help"
	"github.com/tmc/doublecheck/ui/keymap"
	"github.com/tmc/doublecheck/ui/statusbar"
)

// Layout of the button row.
const (
	buttonRow    = 2
	buttonIndent = 2
	buttonGap    = 2
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	keepStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
)

// confirmResultMsg carries the result of the OnConfirm callback.
type confirmResultMsg struct {
	id  string
	err error
}

// focus targets, in tab order.
const (
	focusNone   = -1
	focusDelete = 0
	focusKeep   = 1
	focusCount  = 2
)

// keepButton is an ordinary focus target next to the guarded button.
type keepButton struct {
	label   string
	focused bool
	x, y    int
}

func (b keepButton) View() string {
	style := keepStyle
	if b.focused {
		style = style.Underline(true)
	}
	return style.Render(b.label)
}

func (b keepButton) Contains(x, y int) bool {
	v := b.View()
	return x >= b.x && x < b.x+lipgloss.Width(v) && y >= b.y && y < b.y+lipgloss.Height(v)
}

// model is the Bubble Tea model for the demo session.
type model struct {
	ctx    context.Context
	config Config
	log    *zap.Logger

	delete confirm.Model
	keep   keepButton
	focus  int

	keyMap keymap.KeyMap
	help   help.Model
	debug  *debug.DebugView

	prevented string
	presses   int
	lastMsg   string
	err       error

	width, height int
	quitting      bool
}

func newModel(ctx context.Context, cfg Config) *model {
	cfg = cfg.withDefaults()
	m := &model{
		ctx:       ctx,
		config:    cfg,
		log:       cfg.Logger,
		keep:      keepButton{label: DefaultKeepLabel},
		keyMap:    cfg.KeyMap,
		help:      help.New(cfg.KeyMap),
		debug:     debug.NewView(),
		prevented: statusbar.PreventedIdle,
		width:     80,
		height:    24,
	}
	if cfg.Debug {
		m.debug.Visible = true
	}
	m.delete = confirm.New(DeleteButton,
		confirm.WithLabels(cfg.IdleLabel, cfg.ArmedLabel),
		confirm.WithKeyMap(cfg.KeyMap),
		confirm.WithLogger(cfg.Logger),
		confirm.WithObserver(func(from, to doublecheck.State) {
			m.debug.Log("%s: %s -> %s", DeleteButton, from, to)
		}),
	)
	m.setFocus(focusDelete)
	m.layout()
	return m
}

// Init does nothing.
func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) setFocus(target int) {
	if target == focusDelete {
		m.delete.Focus()
	} else {
		m.delete.Blur()
	}
	m.keep.focused = target == focusKeep
	m.focus = target
}

// layout records where each button is drawn for mouse hit testing.
func (m *model) layout() {
	m.delete.SetOrigin(buttonIndent, buttonRow)
	m.keep.x = buttonIndent + lipgloss.Width(m.delete.View()) + buttonGap
	m.keep.y = buttonRow
}

// Update handles all incoming messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.debug.AddEvent(msg)
	m.layout()

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)
		m.debug.UpdateDimensions(msg.Width)

	case tea.BlurMsg:
		// The terminal lost focus; drop any pending confirmation.
		m.delete.Reset()

	case tea.KeyMsg:
		if m.focus == focusDelete {
			var cmd tea.Cmd
			m.delete, cmd = m.delete.Update(msg)
			cmds = append(cmds, cmd)
			if m.delete.Handles(msg) {
				break
			}
		}
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.ToggleHelp):
			m.help, _ = m.help.Update(msg)
		case key.Matches(msg, m.keyMap.Next):
			m.setFocus((m.focus + 1 + focusCount) % focusCount)
		case key.Matches(msg, m.keyMap.Prev):
			m.setFocus((m.focus - 1 + focusCount) % focusCount)
		case m.focus == focusKeep && key.Matches(msg, m.keyMap.Activate):
			m.lastMsg = "kept"
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		var cmd tea.Cmd
		m.delete, cmd = m.delete.Update(msg)
		cmds = append(cmds, cmd)
		switch {
		case m.delete.Focused():
			m.setFocus(focusDelete)
		case m.keep.Contains(msg.X, msg.Y):
			m.setFocus(focusKeep)
			m.lastMsg = "kept"
		default:
			m.setFocus(focusNone)
		}

	case confirm.ActivatedMsg:
		if msg.DefaultPrevented {
			m.prevented = statusbar.PreventedYes
		} else {
			m.prevented = statusbar.PreventedNo
		}

	case confirm.PressedMsg:
		m.presses++
		m.log.Info("confirmed", zap.String("button", msg.ID), zap.String("source", msg.Source))
		cmds = append(cmds, m.runConfirm(msg.ID))

	case confirmResultMsg:
		m.err = msg.err
		if msg.err != nil {
			m.log.Error("confirm handler failed", zap.String("button", msg.id), zap.Error(msg.err))
			m.lastMsg = ""
		} else {
			m.lastMsg = "confirmed " + msg.id
		}
	}

	m.layout()
	return m, tea.Batch(cmds...)
}

func (m *model) runConfirm(id string) tea.Cmd {
	ctx, fn := m.ctx, m.config.OnConfirm
	return func() tea.Msg {
		return confirmResultMsg{id: id, err: fn(ctx, id)}
	}
}

// View renders the session.
func (m *model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(DefaultTitle))
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat(" ", buttonIndent))
	b.WriteString(m.delete.View())
	b.WriteString(strings.Repeat(" ", buttonGap))
	b.WriteString(m.keep.View())
	b.WriteString("\n\n")

	var custom []string
	if m.lastMsg != "" {
		custom = append(custom, m.lastMsg)
	}
	b.WriteString(statusbar.Render(m.width, statusbar.StatusData{
		State:          m.delete.State().String(),
		Prevented:      m.prevented,
		Presses:        m.presses,
		Err:            m.err,
		CustomMessages: custom,
	}))
	if h := m.help.View(); h != "" {
		b.WriteString("\n")
		b.WriteString(h)
	}
	if d := m.debug.View(); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
	}
	return b.String()
}

// focusName returns the id of the focused target, or "none".
func (m *model) focusName() string {
	switch m.focus {
	case focusDelete:
		return DeleteButton
	case focusKeep:
		return KeepButton
	}
	return "none"
}
