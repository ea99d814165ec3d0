package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, cfg.Workspace)
			return server.RunStdio()
		},
	}
}
