package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/ui"
	"github.com/dhamidi/ebnfpt/workspace"
)

func newUICmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ui [dir]",
		Short: "Browse the parse trees of a directory of grammars",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			ws := workspace.New(afero.NewOsFs(), root, workspace.WithConfig(cfg.Workspace))
			if err := ws.ScanAll(); err != nil {
				return err
			}

			server, err := ui.NewServer(ws)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}
