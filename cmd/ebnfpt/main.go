package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/ebnfpt/config"
)

const version = "0.1.0"

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

func main() {
	var configPath string
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "ebnfpt",
		Short:         "Parse EBNF grammars into position-annotated trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadWithEnvOverrides(afero.NewOsFs(), configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbose
			}
			if logFile != "" {
				cfg.Log.File = logFile
			}

			var path *string
			if cfg.Log.File != "" {
				path = &cfg.Log.File
			}
			commonlog.Configure(cfg.Log.Verbosity, path)
			configureColor(cfg.Output.Color)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ebnfpt.yaml", "configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newUnparseCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
