package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tuxedo/cli/cmd"
	"github.com/ardnew/tuxedo/lang"
	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/pkg"
	"github.com/ardnew/tuxedo/store"
)

// CLI is the top-level command-line interface for tuxedo.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Include []string `help:"Add a directory to the template search path."           name:"include"  placeholder:"DIR"       short:"I" type:"path"`
	DB      string   `help:"Load templates from a SQLite database."                name:"db"       placeholder:"FILE"                type:"path"`
	DBTable string   `default:"${dbTable}"                                          help:"Table holding the templates." name:"db-table"`
	Var     []string `help:"Define a variable as the result of an expression."     name:"var"      placeholder:"NAME=EXPR" sep:"none" short:"D"`
	Vars    []string `help:"Load variables from a YAML or JSON file."              name:"vars"     placeholder:"FILE"                type:"existingfile"`
	Strict  bool     `help:"Fail on undefined variables and invalid expressions."  name:"strict"`

	Render   cmd.Render   `cmd:"" default:"withargs" help:"Render a template"`
	Eval     cmd.Eval     `cmd:""                    help:"Evaluate an expression"`
	Generate cmd.Generate `cmd:""                    help:"Render every template file in a directory"`
	Repl     cmd.Repl     `cmd:""                    help:"Start an interactive session"`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the tuxedo CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Version,
		"dbTable":            store.DefaultTable,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	env, closeEnv, err := cli.env(ctx)
	if err != nil {
		return err
	}
	defer closeEnv()

	// Execute the selected command
	return ktx.Run(&cli, env)
}

// env builds the rendering environment from the global flags. The returned
// function releases the resources held by the environment.
func (c *CLI) env(ctx context.Context) (*cmd.Env, func(), error) {
	vars, err := cmd.LoadVars(ctx, c.Vars, c.Var)
	if err != nil {
		return nil, nil, err
	}

	var loader lang.Loader = lang.SearchPath(pkg.SearchPath(c.Include...)...)

	closeEnv := func() {}

	if c.DB != "" {
		s, err := store.Open(ctx, c.DB,
			store.WithTable(c.DBTable),
			store.WithLogger(log.Default()),
		)
		if err != nil {
			return nil, nil, err
		}

		loader = lang.SearchLoader{loader, s}
		closeEnv = func() {
			if err := s.Close(); err != nil {
				log.WarnContext(ctx, "could not close template store",
					slog.String("db", c.DB),
					slog.Any("error", err))
			}
		}
	}

	log.DebugContext(ctx, "environment ready",
		slog.Any("include", c.Include),
		slog.String("db", c.DB),
		slog.Int("vars", len(vars)),
		slog.Bool("strict", c.Strict),
	)

	eng := lang.New(
		lang.WithLoader(loader),
		lang.WithLogger(log.Default()),
		lang.WithStrict(c.Strict),
	)

	return &cmd.Env{Engine: eng, Vars: vars}, closeEnv, nil
}
