package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-planstatus"
	"github.com/goliatone/go-planstatus/cmd/planstatus/internal/bootstrap"
)

// cli holds the state shared by every subcommand of a single invocation.
type cli struct {
	stdout     io.Writer
	stderr     io.Writer
	v          *viper.Viper
	configFile string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	app := &cli{
		stdout: stdout,
		stderr: stderr,
		v:      bootstrap.NewViper(),
	}
	defaults := planstatus.DefaultConfig()

	root := &cobra.Command{
		Use:   "planstatus",
		Short: "Stamp historical plan documents with a status header",
		Long: `planstatus scans a directory of YYYY-MM-DD-<slug>.md planning documents,
works out which plans were superseded by later ones, and inserts a
"> Status: Historical" header block after each document's title.

Plans dated on or after the cutoff are left alone, as are plans that
already carry a header.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (default is ./.planstatus.yaml when present)")
	flags.String("dir", defaults.Plans.Dir, "directory holding the plan documents")
	flags.String("cutoff", defaults.Plans.Cutoff, "skip plans dated on or after this YYYY-MM-DD date")
	flags.String("log-level", defaults.Logging.Level, "log level (trace, debug, info, warn, error)")
	flags.String("log-format", defaults.Logging.Format, "go-logger output format (console, json, pretty)")
	flags.String("log-provider", defaults.Logging.Provider, "logger provider (console, gologger)")

	mustBind(app.v, bootstrap.KeyPlansDir, root, "dir")
	mustBind(app.v, bootstrap.KeyPlansCutoff, root, "cutoff")
	mustBind(app.v, bootstrap.KeyLoggingLevel, root, "log-level")
	mustBind(app.v, bootstrap.KeyLoggingFormat, root, "log-format")
	mustBind(app.v, bootstrap.KeyLoggingProvider, root, "log-provider")

	root.AddCommand(
		newStampCommand(app),
		newListCommand(app),
		newPreviewCommand(app),
	)
	return root
}

func mustBind(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind --%s: %v", flag, err))
	}
}

// module resolves configuration and builds the planstatus module.
func (a *cli) module(opts ...planstatus.Option) (*planstatus.Module, error) {
	cfg, err := bootstrap.LoadConfig(a.v, a.configFile)
	if err != nil {
		return nil, err
	}
	module, err := moduleBuilder(bootstrap.Options{
		Config:        cfg,
		LogOutput:     a.stderr,
		ModuleOptions: opts,
	})
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, fmt.Errorf("planstatus module not configured")
	}
	module.Logger().Debug("cli.config.resolved",
		"plans_dir", cfg.Plans.Dir,
		"cutoff", cfg.Plans.Cutoff,
		"config_file", a.configFile,
	)
	return module, nil
}
