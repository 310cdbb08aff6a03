package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/tuxedo/cli/cmd/repl"
	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/pkg"
)

// Repl starts an interactive session that evaluates expressions and renders
// templates in one persistent context.
type Repl struct{}

// Run starts the session on the controlling terminal.
func (Repl) Run(ctx context.Context, env *Env) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, env.engine(), env.Vars, cacheDir, log.Default())
}
