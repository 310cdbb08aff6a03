package cli

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/tuxedo/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"      enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}"     enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"${logTimeLayout}"                         help:"Set timestamp format."`
	Caller     bool      `default:"false"                                   help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"${logPretty}"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logTimeLayout": "TimeOnly",
		"logPretty":     strconv.FormatBool(isatty.IsTerminal(os.Stderr.Fd())),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// Boolean flags like Pretty don't go through encoding.TextUnmarshaler, so
// they are only applied early by this pass.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		// Non-boolean flags consume the next arg as value if not assigned.
		if !assigned && (name == "--log-level" || name == "--log-format") &&
			i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			value = args[i+1]
			i++
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(value))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(value))

		case "--log-pretty", "--no-log-pretty":
			if v, ok := scanBool(name, value, assigned); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "--log-caller", "--no-log-caller":
			if v, ok := scanBool(name, value, assigned); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// scanBool returns the value of a boolean flag. A flag without an explicit
// value is true, and the "--no-" form negates the result.
func scanBool(name, value string, assigned bool) (v, ok bool) {
	v = true

	if assigned {
		var err error
		if v, err = strconv.ParseBool(value); err != nil {
			return false, false
		}
	}

	return v != strings.HasPrefix(name, "--no-"), true
}
