// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is built once from functional options and never changes:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Every method takes its attributes as [slog.Attr] values:
//
//	logger.WarnContext(ctx, "template diagnostic", slog.Any("error", err))
//
// The zero Logger discards everything, which lets libraries accept a Logger
// option without requiring one.
//
// # Levels
//
// In addition to the slog levels the package defines [LevelTrace], which the
// template engine uses to report every rule and tag it matches.
//
// # Output
//
// [FormatJSON] writes one JSON object per record. [FormatText] writes
// key=value pairs; with [WithPretty] the text is aligned and colourised with
// lipgloss when the output is a terminal.
//
// # Package logger
//
// The package-level functions ([Info], [WarnContext], ...) write to a default
// logger that [Config] reconfigures and [SetDefault] replaces.
package log
