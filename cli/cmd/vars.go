package cmd

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/pattern"
)

// LoadVars builds the command-line variables. The YAML or JSON documents in
// files are merged in order, then each definition of the form "name=expr" is
// evaluated as an expr-lang expression.
//
// Expressions may refer to every variable defined before them and call
// env(name) to read the process environment.
func LoadVars(ctx context.Context, files, defs []string) (map[string]any, error) {
	vars := make(map[string]any)

	for _, path := range files {
		doc, err := readVars(ctx, path)
		if err != nil {
			return nil, err
		}

		maps.Copy(vars, doc)
	}

	for _, def := range defs {
		name, source, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || !pattern.IsIdentifier(name) {
			return nil, ErrDefineVar.With(slog.String("var", def))
		}

		v, err := evalVar(source, vars)
		if err != nil {
			return nil, ErrDefineVar.Wrap(err).With(slog.String("var", name))
		}

		vars[name] = v

		log.TraceContext(ctx, "defined variable",
			slog.String("name", name),
			slog.Any("value", v),
		)
	}

	return vars, nil
}

func readVars(ctx context.Context, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrLoadVars.Wrap(err).With(slog.String("file", path))
	}

	doc := make(map[string]any)

	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, ErrLoadVars.Wrap(err).With(slog.String("file", path))
	}

	return doc, nil
}

func evalVar(source string, vars map[string]any) (any, error) {
	env := maps.Clone(vars)
	env["env"] = os.Getenv

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, err
	}

	return expr.Run(program, env)
}
