package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/tmc/doublecheck"
	"github.com/tmc/doublecheck/ui/keymap"
)

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	escape = tea.KeyMsg{Type: tea.KeyEscape}
)

// collect runs cmd and flattens any batches into the resulting messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func pressed(msgs []tea.Msg) []PressedMsg {
	var out []PressedMsg
	for _, m := range msgs {
		if p, ok := m.(PressedMsg); ok {
			out = append(out, p)
		}
	}
	return out
}

func activated(t *testing.T, msgs []tea.Msg) ActivatedMsg {
	t.Helper()
	for _, m := range msgs {
		if a, ok := m.(ActivatedMsg); ok {
			return a
		}
	}
	t.Fatalf("no ActivatedMsg in %v", msgs)
	return ActivatedMsg{}
}

func newFocused(t *testing.T, opts ...Option) Model {
	t.Helper()
	m := New("delete", append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	m.Focus()
	return m
}

func TestPressTwice(t *testing.T) {
	var presses []*doublecheck.ActivateEvent
	m := newFocused(t, WithOnPress(func(e *doublecheck.ActivateEvent) { presses = append(presses, e) }))

	if !strings.Contains(m.View(), DefaultIdleLabel) {
		t.Fatalf("Expected idle label, got %q", m.View())
	}

	m, cmd := m.Update(enter)
	msgs := collect(cmd)
	want := ActivatedMsg{ID: "delete", Source: SourceKey, DefaultPrevented: true, Armed: true}
	if diff := cmp.Diff(want, activated(t, msgs)); diff != "" {
		t.Errorf("first activation mismatch (-want +got):\n%s", diff)
	}
	if len(pressed(msgs)) != 0 || len(presses) != 0 {
		t.Error("Expected first press not to fire")
	}
	if !strings.Contains(m.View(), DefaultArmedLabel) {
		t.Errorf("Expected armed label, got %q", m.View())
	}

	m, cmd = m.Update(enter)
	msgs = collect(cmd)
	want = ActivatedMsg{ID: "delete", Source: SourceKey, DefaultPrevented: false, Armed: true}
	if diff := cmp.Diff(want, activated(t, msgs)); diff != "" {
		t.Errorf("second activation mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]PressedMsg{{ID: "delete", Source: SourceKey}}, pressed(msgs)); diff != "" {
		t.Errorf("pressed mismatch (-want +got):\n%s", diff)
	}
	if len(presses) != 1 || presses[0].DefaultPrevented() {
		t.Errorf("Expected one press handler call without default prevented, got %d", len(presses))
	}
	if !m.Armed() {
		t.Error("Expected button to stay armed")
	}
}

func TestEscapeDisarms(t *testing.T) {
	var keys []string
	m := newFocused(t, WithOnKeyUp(func(e *doublecheck.KeyEvent) { keys = append(keys, e.Key) }))

	m, _ = m.Update(enter)
	m, cmd := m.Update(escape)
	if cmd != nil {
		t.Errorf("Expected no command from escape, got %v", collect(cmd))
	}
	if m.Armed() {
		t.Fatal("Expected escape to disarm")
	}
	if !strings.Contains(m.View(), DefaultIdleLabel) {
		t.Errorf("Expected idle label after escape, got %q", m.View())
	}
	if diff := cmp.Diff([]string{"enter", "esc"}, keys); diff != "" {
		t.Errorf("key handler mismatch (-want +got):\n%s", diff)
	}

	_, cmd = m.Update(enter)
	if a := activated(t, collect(cmd)); !a.DefaultPrevented {
		t.Error("Expected activation after escape to prevent default again")
	}
}

func TestBlurDisarms(t *testing.T) {
	blurs := 0
	m := newFocused(t, WithOnBlur(func(*doublecheck.BlurEvent) { blurs++ }))

	m, _ = m.Update(enter)
	m.Blur()
	if m.Armed() || m.Focused() {
		t.Fatal("Expected blur to disarm and drop focus")
	}
	if blurs != 1 {
		t.Errorf("Expected blur handler once, got %d", blurs)
	}

	// Blurring an unfocused button is not a focus loss.
	m.Blur()
	if blurs != 1 {
		t.Errorf("Expected blur handler not to run again, got %d", blurs)
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New("delete")
	m, cmd := m.Update(enter)
	if cmd != nil || m.Armed() {
		t.Error("Expected unfocused button to ignore keys")
	}
}

func TestMouse(t *testing.T) {
	m := New("delete", WithLogger(zaptest.NewLogger(t)))
	m.SetOrigin(10, 2)

	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	m, cmd := m.Update(click(11, 2))
	if !m.Focused() || !m.Armed() {
		t.Fatal("Expected click on button to focus and arm")
	}
	if a := activated(t, collect(cmd)); a.Source != SourceMouse || !a.DefaultPrevented {
		t.Errorf("unexpected activation %+v", a)
	}

	// Release events are ignored.
	m, cmd = m.Update(tea.MouseMsg{X: 11, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd != nil || !m.Armed() {
		t.Error("Expected mouse release to be ignored")
	}

	m, _ = m.Update(click(0, 0))
	if m.Focused() || m.Armed() {
		t.Error("Expected click elsewhere to blur and disarm")
	}

	m, _ = m.Update(click(11, 2))
	m, cmd = m.Update(click(11, 2))
	if diff := cmp.Diff([]PressedMsg{{ID: "delete", Source: SourceMouse}}, pressed(collect(cmd))); diff != "" {
		t.Errorf("pressed mismatch (-want +got):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	m := New("x", WithLabels("ab", "abcdef"))
	m.SetOrigin(5, 1)

	// Idle renders "ab" plus one cell of padding each side.
	if !m.Contains(5, 1) || !m.Contains(8, 1) || m.Contains(9, 1) || m.Contains(5, 2) || m.Contains(4, 1) {
		t.Error("unexpected hit testing for idle button")
	}
}

func TestCustomKeysAndLabels(t *testing.T) {
	km := keymap.DefaultKeyMap().WithActivateKeys("y").WithCancelKeys("n")
	m := newFocused(t, WithKeyMap(km), WithLabels("Remove", "Really remove?"))

	m, _ = m.Update(enter)
	if m.Armed() {
		t.Fatal("Expected enter to be ignored with custom activate keys")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if !m.Armed() || !strings.Contains(m.View(), "Really remove?") {
		t.Fatalf("Expected y to arm, view %q", m.View())
	}
	m, _ = m.Update(escape)
	if !m.Armed() {
		t.Fatal("Expected esc to be ignored with custom cancel keys")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.Armed() {
		t.Fatal("Expected n to disarm")
	}
}

func TestObserver(t *testing.T) {
	var got []string
	record := func(from, to doublecheck.State) { got = append(got, to.String()) }
	m := newFocused(t, WithObserver(record), WithObserver(record))

	m, _ = m.Update(enter)
	m.Blur()

	if diff := cmp.Diff([]string{"armed", "armed", "idle", "idle"}, got); diff != "" {
		t.Errorf("observer mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	var blurs int
	m := newFocused(t, WithOnBlur(func(*doublecheck.BlurEvent) { blurs++ }))

	m, _ = m.Update(enter)
	m.Reset()
	if m.Armed() || !m.Focused() {
		t.Fatalf("Expected an idle focused button, got armed=%v focused=%v", m.Armed(), m.Focused())
	}
	if blurs != 0 {
		t.Errorf("Expected Reset to skip the blur handler, got %d calls", blurs)
	}
}

func TestHandles(t *testing.T) {
	m := newFocused(t, WithKeyMap(keymap.DefaultKeyMap().WithCancelKeys("?")))
	for _, k := range []tea.KeyMsg{enter, {Type: tea.KeyRunes, Runes: []rune{'?'}}} {
		if !m.Handles(k) {
			t.Errorf("Expected button to handle %q", k.String())
		}
	}
	if m.Handles(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Error("Expected tab to be left to the session")
	}
}
