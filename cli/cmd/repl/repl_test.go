package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tuxedo/lang"
	"github.com/ardnew/tuxedo/log"
)

func newTestModel(t *testing.T, vars map[string]any) model {
	t.Helper()

	return newModel(t.Context(), lang.New(), vars, NewHistory(""), log.Logger{})
}

func typeRunes(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, map[string]any{"name": "teve"})

	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"name.upper", "TEVE"},
		{"Hello {{ name }}!", "Hello teve!"},
		{"{% set x = 4 %}", ""},
		{"x * 2", "8"},
	}

	for _, tt := range tests {
		got, err := m.evaluate(tt.input)
		if err != nil {
			t.Fatalf("evaluate(%q): %v", tt.input, err)
		}

		if got != tt.want {
			t.Errorf("evaluate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsTemplate(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]bool{
		"{{ x }}":         true,
		"{% set a = 1 %}": true,
		"{# note #}":      true,
		"a + b":           false,
		"{'a': 1}":        false,
	} {
		if got := isTemplate(input); got != want {
			t.Errorf("isTemplate(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	m := typeRunes(newTestModel(t, map[string]any{"name": "teve"}), "nam")

	if len(m.matches) != 1 || m.matches[0].Str != "name" {
		t.Fatalf("matches = %v, want [name]", m.matches)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "name" {
		t.Errorf("input after tab = %q, want %q", got, "name")
	}

	if m.input.Position() != len("name") {
		t.Errorf("cursor = %d, want %d", m.input.Position(), len("name"))
	}

	if m.matches != nil {
		t.Errorf("matches after confirm = %v, want none", m.matches)
	}
}

func TestExecuteInput(t *testing.T) {
	t.Parallel()

	m := typeRunes(newTestModel(t, nil), "1 + 2")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input after enter = %q, want empty", m.input.Value())
	}

	if e, err := m.history.Entry(0); err != nil || e.Line != "1 + 2" || e.Mode != modeEval {
		t.Errorf("history entry = %+v, %v", e, err)
	}
}

func TestSwitchMode(t *testing.T) {
	t.Parallel()

	m := typeRunes(newTestModel(t, nil), "1 +")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl {
		t.Fatalf("mode = %v, want control", m.mode)
	}

	if m.input.Value() != "" {
		t.Errorf("control input = %q, want empty", m.input.Value())
	}

	m = typeRunes(m, "qu")
	if len(m.matches) != 1 || m.matches[0].Str != "quit" {
		t.Errorf("control matches = %v, want [quit]", m.matches)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "1 +" {
		t.Errorf("after switching back: mode %v, input %q", m.mode, m.input.Value())
	}
}

func TestExecuteCommand(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, map[string]any{"a": 1})

	if _, err := m.evaluate("{% set b = 2 %}"); err != nil {
		t.Fatal(err)
	}

	if list := m.listScope(); !strings.Contains(list, "a") || !strings.Contains(list, "b") {
		t.Errorf("listScope() = %q", list)
	}

	m, _ = m.executeCommand("reset")
	if _, ok := m.scope.Get("b"); ok {
		t.Error("reset kept a variable set during the session")
	}

	if _, ok := m.scope.Get("a"); !ok {
		t.Error("reset dropped an initial variable")
	}

	m, cmd := m.executeCommand("quit")
	if !m.quitting || cmd == nil {
		t.Error("quit did not stop the session")
	}
}
