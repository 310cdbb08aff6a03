package log

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestPrettyHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h := newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, makeFormatTimeFunc("none"))
	l := slog.New(h).With("depth", 1).WithGroup("tag")

	l.Info("hello world", "name", "two words", slog.Group("at", slog.Int("line", 3)))
	l.Debug("empty", "text", "")

	want := "INFO  hello world depth=1 tag.name=\"two words\" tag.at.line=3\n" +
		"DEBUG empty depth=1 tag.text=\"\"\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()

	h := newPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, makeFormatTimeFunc("none"))

	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info enabled at warn")
	}

	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error disabled at warn")
	}
}

func TestShortFile(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/src/tuxedo/lang/run.go": "lang/run.go",
		"lang/run.go":             "lang/run.go",
		"run.go":                  "run.go",
	}

	for in, want := range tests {
		if got := shortFile(in); got != want {
			t.Errorf("shortFile(%q) = %q, want %q", in, got, want)
		}
	}
}
