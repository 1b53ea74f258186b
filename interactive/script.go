package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/tools/txtar"
)

// A script drives a session without a terminal. One step per line:
//
//	key <name>       press a key: enter, esc, tab, shift+tab, space, ctrl+c, or one character
//	click <x> <y>    left mouse press at cell (x, y)
//	resize <w> <h>   window resize
//	focus-out        the terminal window loses focus
//
// Blank lines and lines starting with '#' are ignored.

// Step is one scripted input.
type Step struct {
	Line string
	Msg  tea.Msg
}

// Frame is the observable session state after a step.
type Frame struct {
	Step      string
	State     string
	Focus     string
	Prevented string
	Presses   int
	Message   string
	Err       string
}

func (f Frame) String() string {
	s := fmt.Sprintf("%s: state=%s focus=%s prevented=%s presses=%d", f.Step, f.State, f.Focus, f.Prevented, f.Presses)
	if f.Message != "" {
		s += fmt.Sprintf(" msg=%q", f.Message)
	}
	if f.Err != "" {
		s += fmt.Sprintf(" err=%q", f.Err)
	}
	return s
}

var keyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
}

// ParseScript parses script text into steps.
func ParseScript(data []byte) ([]Step, error) {
	var steps []Step
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		msg, err := parseStep(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		steps = append(steps, Step{Line: line, Msg: msg})
	}
	return steps, nil
}

func parseStep(fields []string) (tea.Msg, error) {
	switch fields[0] {
	case "key":
		if len(fields) != 2 {
			return nil, fmt.Errorf("key takes one argument")
		}
		name := fields[1]
		if t, ok := keyTypes[name]; ok {
			return tea.KeyMsg{Type: t}, nil
		}
		if utf8.RuneCountInString(name) == 1 {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}, nil
		}
		return nil, fmt.Errorf("unknown key %q", name)
	case "focus-out":
		if len(fields) != 1 {
			return nil, fmt.Errorf("focus-out takes no arguments")
		}
		return tea.BlurMsg{}, nil
	case "click":
		x, y, err := twoInts(fields)
		if err != nil {
			return nil, err
		}
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, nil
	case "resize":
		w, h, err := twoInts(fields)
		if err != nil {
			return nil, err
		}
		return tea.WindowSizeMsg{Width: w, Height: h}, nil
	}
	return nil, fmt.Errorf("unknown step %q", fields[0])
}

func twoInts(fields []string) (int, int, error) {
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("%s takes two arguments", fields[0])
	}
	a, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", fields[0], err)
	}
	b, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", fields[0], err)
	}
	return a, b, nil
}

// LoadScript reads a txtar archive and parses its "script" file.
func LoadScript(path string) ([]Step, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	data, ok := archiveFile(ar, "script")
	if !ok {
		return nil, fmt.Errorf("%s: no script file in archive", path)
	}
	return ParseScript(data)
}

func archiveFile(ar *txtar.Archive, name string) ([]byte, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// Replay feeds steps to a fresh session model and returns a frame per step.
// Commands are run synchronously in order. Replay stops early when the
// session quits.
func Replay(ctx context.Context, cfg Config, steps []Step) []Frame {
	m := newModel(ctx, cfg)
	frames := make([]Frame, 0, len(steps))
	for _, step := range steps {
		_, cmd := m.Update(step.Msg)
		quit := drain(m, cmd)
		frames = append(frames, m.frame(step.Line))
		if quit {
			break
		}
	}
	return frames
}

func drain(m *model, cmd tea.Cmd) (quit bool) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			quit = true
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return quit
}

func (m *model) frame(step string) Frame {
	f := Frame{
		Step:      step,
		State:     m.delete.State().String(),
		Focus:     m.focusName(),
		Prevented: m.prevented,
		Presses:   m.presses,
		Message:   m.lastMsg,
	}
	if m.err != nil {
		f.Err = m.err.Error()
	}
	return f
}
