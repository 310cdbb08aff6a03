package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: command context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, configValues(ktx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = atomic.WriteFile(confPath, bytes.NewReader(data))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.InfoContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configValues returns the current value of every top-level flag, keyed by
// flag name. Unset flags and flags that only make sense on the command line
// are omitted.
func configValues(ktx *kong.Context) map[string]any {
	prefixIgnore := []string{"help", "version", profile.Tag}

	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := configValue(ktx.FlagValue(flag)); v != nil {
			values[flag.Name] = v
		}
	}

	return values
}

func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

	case []string:
		if len(v) == 0 {
			return nil
		}
	}

	return v
}
