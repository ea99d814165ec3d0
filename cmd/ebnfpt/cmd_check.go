package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/parse"
)

func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report the first syntax error of each grammar file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := parse.FromFile(path); err != nil {
					printParseError(cmd.ErrOrStderr(), path, err)
					failed++
					continue
				}
				if !quiet {
					printOK(cmd.OutOrStdout(), path)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report files with errors")

	return cmd
}
