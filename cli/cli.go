package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/props/cli/cmd"
	"github.com/ardnew/props/pkg"
	"github.com/ardnew/props/props"
)

// CLI is the top-level command-line interface for props.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version   kong.VersionFlag `help:"Print version and exit"`
	Source    []string         `help:"Properties file(s) merged in order, or '-' for stdin (default)" name:"source" short:"s" placeholder:"FILE"`
	MaxLength int              `default:"0" help:"Reject keys or values longer than this many bytes (0 is unlimited)"`

	Get    cmd.Get    `cmd:"" help:"Print the value of a key"`
	Set    cmd.Set    `cmd:"" help:"Print the sources with a key set"`
	Delete cmd.Delete `cmd:"" help:"Print the sources with a key removed"`
	Fmt    cmd.Fmt    `cmd:"" help:"Format the sources"`
	Query  cmd.Query  `cmd:"" help:"Filter or transform entries with an expression"`
	Repl   cmd.Repl   `cmd:"" help:"Explore and edit the sources interactively"`
	Serve  cmd.Serve  `cmd:"" help:"Serve the sources over HTTP"`
	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
}

// Run executes the props CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure logging before kong reports anything.
	cli.Log.scan(args)

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
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve(ctx, props.NewCache()), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, cli.Source)
	ctx = cmd.WithLoadOptions(ctx, props.WithMaxLength(cli.MaxLength))

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
