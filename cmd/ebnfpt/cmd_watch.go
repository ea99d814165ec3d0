package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/ebnfpt/workspace"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check grammar files again whenever they change",
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
			for _, f := range ws.Files() {
				report(cmd, f.Path, f)
			}

			w, err := workspace.NewWatcher(ws)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Watch(ctx, func(path string, f *workspace.File) {
				report(cmd, path, f)
			})
		},
	}
}

func report(cmd *cobra.Command, path string, f *workspace.File) {
	switch {
	case f == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", pathColor.Sprint(path), faintColor.Sprint("removed"))
	case f.Err != nil:
		printParseError(cmd.ErrOrStderr(), path, f.Err)
	default:
		printOK(cmd.OutOrStdout(), path)
	}
}
