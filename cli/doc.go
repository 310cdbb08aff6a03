// Package cli contains the command line interface for tuxedo.
//
// # Usage
//
//	tuxedo [flags] [render] [FILE|-] [-o OUT]
//	tuxedo [flags] eval EXPR [--format text|json|yaml]
//	tuxedo [flags] generate [DIR] [--watch] [--debounce DURATION]
//	tuxedo [flags] repl
//	tuxedo [flags] init [--force]
//
// Render is the default command, so a bare file argument renders that file
// and no argument renders standard input.
//
// # Templates and Variables
//
//   - --include: Add a directory to the template search path. Directories
//     listed in TUXEDO_PATH are searched after the given ones.
//   - --db, --db-table: Also load templates from a SQLite table.
//   - --var NAME=EXPR: Define a variable. EXPR is an expr-lang expression, so
//     strings must be quoted, as in --var 'name="Teve"'. The function
//     env(NAME) returns an environment variable.
//   - --vars FILE: Load variables from a YAML or JSON file.
//   - --strict: Fail on undefined variables and invalid expressions.
//
// # Configuration
//
// Flags may be set in config.yaml or config.json in the configuration
// directory. Nested YAML mappings are flattened with hyphens:
//
//	log:
//	  level: debug
//	include:
//	  - ~/templates
//
// The init command writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, TimeOnly, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output (default on terminals)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tuxedo .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/tuxedo/pprof)
package cli
