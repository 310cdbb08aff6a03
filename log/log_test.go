package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	return entry
}

func jsonLogger(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON), WithPretty(false), WithTimeLayout("none"),
	}, opts...)...)
}

func TestMakeDefaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf)
	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("Make = level %v format %v, want %v %v",
			l.Level(), l.Format(), DefaultLevel, DefaultFormat)
	}

	if l.Writer() != &buf {
		t.Error("Writer() is not the output given to Make")
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			tt.log(jsonLogger(&buf, WithLevel(tt.min)), "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v (%q)", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	jsonLogger(&buf, WithLevel(LevelTrace)).
		TraceContext(t.Context(), "matched", slog.String("rule", "add"))

	entry := decode(t, &buf)

	if entry["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", entry["level"])
	}

	if entry["msg"] != "matched" || entry["rule"] != "add" {
		t.Errorf("entry = %v", entry)
	}

	if _, ok := entry["time"]; ok {
		t.Error("time present although the layout is none")
	}
}

func TestTextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	Make(&buf, WithPretty(false)).Warn("diagnostic", slog.String("name", "x"))

	out := buf.String()
	for _, want := range []string{"level=WARN", "msg=diagnostic", "name=x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestCaller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	jsonLogger(&buf, WithCaller(true)).Error("here")

	src, ok := decode(t, &buf)["source"].(map[string]any)
	if !ok {
		t.Fatal("source missing")
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want this test file", file)
	}
}

func TestWithAndWrap(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := jsonLogger(&buf).With(slog.String("template", "page"))
	l.Warn("first")

	if decode(t, &buf)["template"] != "page" {
		t.Error("With attribute missing")
	}

	buf.Reset()

	w := l.Wrap(WithLevel(LevelDebug))
	w.Debug("second")

	entry := decode(t, &buf)
	if entry["msg"] != "second" {
		t.Errorf("Wrap did not keep the output: %v", entry)
	}

	if w.Level() != LevelDebug || l.Level() != DefaultLevel {
		t.Error("Wrap modified the receiver")
	}
}

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var l Logger

	l.Trace("x")
	l.Info("x")
	l.ErrorContext(t.Context(), "x")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on the zero value returned a live logger")
	}

	if l.Level() != DefaultLevel || l.Writer() != io.Discard {
		t.Error("zero value does not report defaults")
	}

	w := l.Wrap(WithLevel(LevelDebug))
	if w.Logger == nil || w.Writer() != io.Discard {
		t.Error("Wrap on the zero value should discard output")
	}
}

func TestConcurrent(t *testing.T) {
	t.Parallel()

	var (
		buf bytes.Buffer
		wg  sync.WaitGroup
	)

	l := Make(&buf, WithLevel(LevelInfo))

	for i := range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.Info("render", slog.Int("id", i))
		}()
	}

	wg.Wait()

	if lines := strings.Count(buf.String(), "\n"); lines != 100 {
		t.Errorf("wrote %d lines, want 100", lines)
	}
}
