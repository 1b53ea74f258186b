package interactive

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"
)

func TestScripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no scripts in testdata")
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			want, ok := archiveFile(ar, "want")
			if !ok {
				t.Fatalf("%s: no want file", file)
			}
			steps, err := LoadScript(file)
			if err != nil {
				t.Fatal(err)
			}

			frames := Replay(context.Background(), Config{Logger: zaptest.NewLogger(t)}, steps)
			var got []string
			for _, f := range frames {
				got = append(got, f.String())
			}
			wantLines := strings.Split(strings.TrimSpace(string(want)), "\n")
			if diff := cmp.Diff(wantLines, got); diff != "" {
				t.Errorf("trace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScript(t *testing.T) {
	steps, err := ParseScript([]byte(`
# comment
key enter
key space
key y
click 4 2
resize 100 30
focus-out
`))
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		{Line: "key enter", Msg: tea.KeyMsg{Type: tea.KeyEnter}},
		{Line: "key space", Msg: tea.KeyMsg{Type: tea.KeySpace}},
		{Line: "key y", Msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}},
		{Line: "click 4 2", Msg: tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}},
		{Line: "resize 100 30", Msg: tea.WindowSizeMsg{Width: 100, Height: 30}},
		{Line: "focus-out", Msg: tea.BlurMsg{}},
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"key", "line 1: key takes one argument"},
		{"key enter\nkey hyperspace", `line 2: unknown key "hyperspace"`},
		{"click 1", "line 1: click takes two arguments"},
		{"click a 1", "line 1: click:"},
		{"focus-out now", "line 1: focus-out takes no arguments"},
		{"jump", `line 1: unknown step "jump"`},
	}
	for _, tt := range tests {
		_, err := ParseScript([]byte(tt.script))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("ParseScript(%q) error = %v, want %q", tt.script, err, tt.want)
		}
	}
}

func TestLoadScriptWithoutScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txtar")
	if err := writeFile(path, "-- want --\nnothing\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err == nil {
		t.Fatal("Expected error for archive without script file")
	}
}
