package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tuxedo/log"
)

// resolve returns a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Nested mappings are flattened, joining keys with hyphens, so that
//     "log: {level: debug}" sets --log-level
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Sequences set repeatable flags such as --include
//   - Scalars are passed to Kong as strings
//
// Example config file:
//
//	log:
//	  level: debug
//	  pretty: false
//	include:
//	  - ~/templates
//	strict: true
//
// A file that is not valid YAML is logged and ignored. Command-line flags
// override config file values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if err != io.EOF {
				log.WarnContext(ctx, "ignoring invalid config file",
					slog.Any("error", err))
			}

			return config{}, nil
		}

		cfg := config{}
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Config keys may use underscores in place of hyphens. Try both forms.
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten adds every leaf of m to r, keyed by its path joined with hyphens.
func (r config) flatten(prefix string, m map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		switch v := m[key].(type) {
		case map[string]any:
			r.flatten(name, v)
		case []any:
			seq := make([]any, len(v))
			for i, elem := range v {
				seq[i] = scalar(elem)
			}

			r[name] = seq
		default:
			r[name] = scalar(v)
		}
	}
}

// scalar returns v as Kong expects to parse it. Kong requires numbers as
// strings for parsing.
func scalar(v any) any {
	switch v.(type) {
	case nil, string, bool:
		return v
	}

	return fmt.Sprint(v)
}
