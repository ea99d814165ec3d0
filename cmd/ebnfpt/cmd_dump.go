package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/format"
	"github.com/dhamidi/ebnfpt/parse"
)

func newDumpCmd() *cobra.Command {
	var outputFormat string
	var partial bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the parse tree of a grammar file",
		Long: `Print the parse tree of a grammar file.

When the file has a syntax error the partial tree is printed with the nodes
that may be incomplete marked, followed by the error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if outputFormat == "" {
				outputFormat = cfg.Output.Format
			}

			tree, parseErr := parse.FromFile(path)
			if tree == nil {
				return parseErr
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), format.Partial(partial || parseErr != nil))
			if err != nil {
				return err
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if parseErr != nil {
				printParseError(cmd.ErrOrStderr(), path, parseErr)
				return fmt.Errorf("%s: partial tree", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&partial, "partial", false, "mark the rightmost spine even when parsing succeeds")

	return cmd
}
