package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agenthands/bscript/pkg/vm"
)

func newTokensCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the token stream with the indices goto jumps to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.settings(cmd)
			if err != nil {
				return err
			}
			path := entryPath(cfg, args)
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			prog, err := vm.Compile(src)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tKIND\tLITERAL\tPOS")
			for i, tok := range prog.Tokens {
				fmt.Fprintf(tw, "%d\t%s\t%q\t%d:%d\n", i, tok.Kind, tok.Literal, tok.Line, tok.Column)
			}
			return tw.Flush()
		},
	}
}
