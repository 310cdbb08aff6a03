package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tuxedo/lang"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Env is the rendering environment shared by all commands.
type Env struct {
	// Engine renders templates and evaluates expressions.
	Engine *lang.Engine
	// Vars are the variables given on the command line and in variable files.
	Vars map[string]any
	// Stdin and Stdout default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

func (e *Env) engine() *lang.Engine {
	if e.Engine == nil {
		return lang.New()
	}

	return e.Engine
}

func (e *Env) stdin() io.Reader {
	if e.Stdin == nil {
		return os.Stdin
	}

	return e.Stdin
}

func (e *Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}

	return e.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// render renders the template named by source, or stdin for "" and "-".
func (e *Env) render(ctx context.Context, source string) (string, error) {
	if source == "" || source == stdinSource {
		out, err := e.engine().RenderReader(ctx, e.stdin(), e.Vars)
		if err != nil {
			return out, ErrRender.Wrap(err).With(slog.String("source", stdinSource))
		}

		return out, nil
	}

	out, err := e.engine().RenderFile(ctx, source, e.Vars)
	if err != nil {
		return out, ErrRender.Wrap(err).With(slog.String("source", source))
	}

	return out, nil
}
