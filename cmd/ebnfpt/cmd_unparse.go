package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/format"
	"github.com/dhamidi/ebnfpt/parse"
)

func newUnparseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unparse <file>",
		Short: "Parse a grammar file and print the text of its tree",
		Long: `Parse a grammar file and print the text of its tree.

The output equals the input. After a syntax error only the text up to the
error is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			tree, parseErr := parse.FromFile(path)
			if tree == nil {
				return parseErr
			}

			if err := format.NewSourceEncoder(cmd.OutOrStdout()).Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if parseErr != nil {
				printParseError(cmd.ErrOrStderr(), path, parseErr)
				return fmt.Errorf("%s: partial tree", path)
			}
			return nil
		},
	}
}
