package repl

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"1 + 2", modeEval},
		{"list", modeCtrl},
		{"name.upper", modeEval},
		{"name.upper", modeEval},
		{"1 + 2", modeEval},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"name.upper", modeEval},
		{"1 + 2", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nE:name.upper\nE:1 + 2\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}

	if _, err := reloaded.Entry(len(want)); err != ErrOutOfBounds {
		t.Errorf("Entry(%d) error = %v, want %v", len(want), err, ErrOutOfBounds)
	}
}

func TestHistoryInMemory(t *testing.T) {
	t.Parallel()

	h := NewHistory("")
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if err := h.Write("  ", modeEval); err != nil {
		t.Fatal(err)
	}

	if err := h.Write("quit", modeCtrl); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}

	if e, _ := h.Entry(0); e.Mode != modeCtrl || e.Line != "quit" {
		t.Errorf("Entry(0) = %+v", e)
	}
}
