package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"Trace", func() { Trace("m", slog.String("k", "v")) }, "TRACE"},
		{"Debug", func() { Debug("m", slog.String("k", "v")) }, "DEBUG"},
		{"Info", func() { Info("m", slog.String("k", "v")) }, "INFO"},
		{"Warn", func() { Warn("m", slog.String("k", "v")) }, "WARN"},
		{"Error", func() { Error("m", slog.String("k", "v")) }, "ERROR"},
		{"TraceContext", func() { TraceContext(context.Background(), "m", slog.String("k", "v")) }, "TRACE"},
		{"DebugContext", func() { DebugContext(context.Background(), "m", slog.String("k", "v")) }, "DEBUG"},
		{"InfoContext", func() { InfoContext(context.Background(), "m", slog.String("k", "v")) }, "INFO"},
		{"WarnContext", func() { WarnContext(context.Background(), "m", slog.String("k", "v")) }, "WARN"},
		{"ErrorContext", func() { ErrorContext(context.Background(), "m", slog.String("k", "v")) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) || !strings.Contains(out, `"k":"v"`) {
				t.Errorf("output = %q, want level %s and attribute", out, tt.level)
			}
		})
	}
}
