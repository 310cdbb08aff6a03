package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/tuxedo/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelDebug))

	logger.Debug("render start", slog.Int("bytes", 42))
	logger.With(slog.String("template", "page.html")).Warn("unknown macro")
	// Output:
	// {"level":"DEBUG","msg":"render start","bytes":42}
	// {"level":"WARN","msg":"unknown macro","template":"page.html"}
}

func Example_pretty() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))

	logger.Warn("template diagnostic", slog.String("name", "missing.txt"))
	// Output:
	// WARN  template diagnostic name=missing.txt
}
