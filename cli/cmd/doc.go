// Package cmd implements the tuxedo subcommands: render, eval, generate,
// init, and repl.
//
// Commands receive the shared [Env] through kong bindings. The kong.Context
// of the current invocation is available through [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
