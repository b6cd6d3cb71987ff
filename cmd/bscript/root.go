package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agenthands/bscript/pkg/config"
)

const cliVersion = "bscript 0.1.0-dev"

type rootOptions struct {
	configPath string
	logLevel   string
	trace      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	runOpts := &runOptions{root: opts}

	cmd := &cobra.Command{
		Use:   "bscript [file]",
		Short: "bscript runs token-stream scripts",
		Long: `bscript tokenizes a script and executes the token stream directly.

Without a file argument the entry from bscript.yml is run, or index.bs
when there is no project file.

Commands:
  run      Run a script (default)
  tokens   List the token stream with the indices goto jumps to
  version  Print the CLI version
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpts.execute(cmd, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to "+config.FileName+" (default: searched from the working directory upwards)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&opts.trace, "trace", false, "log every dispatched statement (same as --log-level debug)")
	runOpts.bindFlags(cmd)

	cmd.AddCommand(newRunCmd(opts), newTokensCmd(opts), newVersionCmd())
	return cmd
}

// settings resolves the project config and applies command line overrides.
func (o *rootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		if cfg.LogLevel, err = config.ParseLevel(o.logLevel); err != nil {
			return nil, err
		}
	}
	if o.trace {
		cfg.Trace = true
	}
	if cfg.Trace {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func entryPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Entry
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cliVersion)
		},
	}
}
