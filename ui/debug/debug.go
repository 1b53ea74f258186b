package debug

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DebugView shows recent messages and log lines next to the UI.
type DebugView struct {
	log           []string
	events        []string
	eventCounter  int
	maxEvents     int
	maxLogLines   int
	ignoredEvents map[string]bool // type names as reported by reflect
	width         int
	columnWidth   int
	Visible       bool
}

// NewView creates a debug view. It starts visible when DEBUG_UI=1.
func NewView() *DebugView {
	return &DebugView{
		maxEvents:   8,
		maxLogLines: 10,
		ignoredEvents: map[string]bool{
			"tea.FrameMsg":       true,
			"tea.WindowSizeMsg":  true,
			"tea.BatchMsg":       true,
			"tea.sequenceMsg":    true,
			"tea.FocusMsg":       true,
			"tea.BlurMsg":        true,
			"tea.MouseMsg":       true, // motion floods the panel
			"tea.ClearScreenMsg": true,
		},
		width:       80,
		columnWidth: 36,
		Visible:     os.Getenv("DEBUG_UI") == "1",
	}
}

// Events returns the recorded events, oldest first.
func (dv *DebugView) Events() []string { return dv.events }

// AddEvent records msg unless its type is ignored.
func (dv *DebugView) AddEvent(msg tea.Msg) {
	if !dv.Visible || msg == nil {
		return
	}
	typeName := reflect.TypeOf(msg).String()
	if dv.ignoredEvents[strings.TrimPrefix(typeName, "*")] {
		return
	}

	display := typeName
	if i := strings.LastIndex(display, "."); i != -1 {
		display = display[i+1:]
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		display += " " + k.String()
	}

	dv.eventCounter++
	dv.events = append(dv.events, dv.truncate(fmt.Sprintf("%04d:%s", dv.eventCounter, display)))
	if len(dv.events) > dv.maxEvents {
		dv.events = dv.events[len(dv.events)-dv.maxEvents:]
	}
}

// Log adds a log entry.
func (dv *DebugView) Log(format string, args ...any) {
	if !dv.Visible {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(fmt.Sprintf(format, args...), "\n"), "\n") {
		dv.log = append(dv.log, line)
	}
	if len(dv.log) > dv.maxLogLines {
		dv.log = dv.log[len(dv.log)-dv.maxLogLines:]
	}
}

// UpdateDimensions updates the width parameters.
func (dv *DebugView) UpdateDimensions(width int) {
	if width <= 0 {
		return
	}
	dv.width = width
	dv.columnWidth = max(width/2-4, 20)
}

func (dv *DebugView) truncate(s string) string {
	if dv.columnWidth > 3 && lipgloss.Width(s) > dv.columnWidth {
		runes := []rune(s)
		if len(runes) > dv.columnWidth-3 {
			return string(runes[:dv.columnWidth-3]) + "..."
		}
	}
	return s
}

// View renders the debug view if visible.
func (dv *DebugView) View() string {
	if !dv.Visible || dv.width < 40 {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(dv.columnWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	var sections []string
	if len(dv.log) > 0 {
		lines := make([]string, len(dv.log))
		for i, l := range dv.log {
			lines[i] = dv.truncate(l)
		}
		sections = append(sections, style.Render("Logs:\n"+strings.Join(lines, "\n")))
	}
	if len(dv.events) > 0 {
		sections = append(sections, style.Render("Events:\n"+strings.Join(dv.events, "\n")))
	}
	switch len(sections) {
	case 0:
		return ""
	case 1:
		return sections[0]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sections[0], "  ", sections[1])
}
