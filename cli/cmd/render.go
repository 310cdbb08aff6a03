package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ardnew/tuxedo/log"
)

// Render renders a template file or stdin.
type Render struct {
	Source string `arg:"" default:"-" help:"Template file or '-' for stdin" name:"file" optional:""`
	Output string `       default:"-" help:"Output file or '-' for stdout"                           placeholder:"FILE" short:"o"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context, env *Env) error {
	out, err := env.render(ctx, r.Source)
	if err != nil {
		return err
	}

	if err := writeOutput(env, r.Output, out); err != nil {
		return err
	}

	log.DebugContext(ctx, "rendered template",
		slog.String("source", r.Source),
		slog.String("output", r.Output),
		slog.Int("bytes", len(out)),
	)

	return nil
}

// writeOutput writes text to stdout for "" and "-", otherwise atomically
// replaces the file at path.
func writeOutput(env *Env, path, text string) error {
	if path == "" || path == stdinSource {
		if _, err := io.WriteString(env.stdout(), text); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", path))
	}

	return nil
}
