package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tuxedo/value"
)

// Eval evaluates an expression with the command-line variables in scope.
type Eval struct {
	Expr   string `arg:"" help:"Expression to evaluate"`
	Format string `       help:"Output format" default:"text" enum:"text,json,yaml" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, env *Env) error {
	eng := env.engine()

	v, ok := eng.Evaluate(ctx, e.Expr, eng.NewContext(env.Vars))
	if !ok {
		return ErrEvaluate.With(slog.String("expr", e.Expr))
	}

	out, err := formatValue(ctx, v, e.Format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.stdout(), out)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func formatValue(ctx context.Context, v value.Value, format string) (string, error) {
	switch format {
	case "", "text":
		return v.String(), nil

	case "json":
		data, err := json.Marshal(v.Native())
		if err != nil {
			return "", ErrJSONMarshal.Wrap(err)
		}

		return string(data), nil

	case "yaml":
		data, err := yaml.MarshalContext(ctx, v.Native())
		if err != nil {
			return "", ErrYAMLMarshal.Wrap(err)
		}

		return strings.TrimSuffix(string(data), "\n"), nil
	}

	return "", ErrInvalidFormat.With(slog.String("format", format))
}
