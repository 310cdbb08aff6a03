package profile

import (
	"slices"
	"testing"
)

func TestProfilerDisabled(t *testing.T) {
	t.Parallel()

	p := Profiler{}
	if p.Enabled() {
		t.Error("empty mode reports enabled")
	}

	if _, ok := p.Start().(ignore); !ok {
		t.Error("empty mode started a profiler")
	}

	unknown := Profiler{Mode: "nonsense", Path: t.TempDir()}
	if unknown.Enabled() {
		t.Error("unknown mode reports enabled")
	}

	s := unknown.Start()
	if _, ok := s.(ignore); !ok {
		t.Error("unknown mode started a profiler")
	}

	s.Stop()
}

func TestModesSorted(t *testing.T) {
	t.Parallel()

	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() = %q, not sorted", m)
	}
}
