package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/parse"
	"github.com/dhamidi/ebnfpt/pt"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>...",
		Short: "Print tree metrics of grammar files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tPRODUCTS\tNODES\tHEIGHT\tMAX DEGREE\tSTATUS")

			failed := 0
			for _, path := range args {
				tree, err := parse.FromFile(path)
				if tree == nil {
					fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%s\n", path, errorColor.Sprint(err.Error()))
					failed++
					continue
				}
				status := okColor.Sprint("ok")
				if err != nil {
					status = errorColor.Sprint(err.Error())
					failed++
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
					path,
					len(tree.Root.ChildrenOfKind(pt.KindProduct)),
					tree.Count(),
					tree.Height(),
					tree.MaxDegree(),
					status,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}
