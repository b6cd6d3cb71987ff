package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/agenthands/bscript/pkg/config"
	"github.com/agenthands/bscript/pkg/core/value"
	"github.com/agenthands/bscript/pkg/script"
)

type runOptions struct {
	root    *rootOptions
	gas     int
	dumpEnv bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{root: root}
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.execute(cmd, args)
		},
	}
	opts.bindFlags(cmd)
	return cmd
}

func (o *runOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.gas, "gas", config.DefaultGas, "maximum number of statements to execute, 0 for no limit")
	cmd.Flags().BoolVar(&o.dumpEnv, "dump-env", false, "print the variable environment after a successful run")
}

func (o *runOptions) execute(cmd *cobra.Command, args []string) error {
	cfg, err := o.root.settings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("gas") {
		if o.gas < 0 {
			return fmt.Errorf("--gas must be >= 0, got %d", o.gas)
		}
		cfg.Gas = o.gas
	}

	path := entryPath(cfg, args)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	res, err := script.Run(src, script.Options{
		Out:    cmd.OutOrStdout(),
		Gas:    cfg.Gas,
		Logger: newLogger(cmd, cfg),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if o.dumpEnv {
		dumpEnv(cmd.OutOrStdout(), res.Env)
	}
	return nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func dumpEnv(w io.Writer, env map[string]value.Value) {
	view := make(map[string]string, len(env))
	for name, v := range env {
		view[name] = fmt.Sprintf("%s(%s)", v.Type, v.Format())
	}
	dumpConfig.Fdump(w, view)
}
