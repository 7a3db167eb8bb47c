package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	verbose bool
)

var mainCommand = &cobra.Command{
	Use:   "sudoku",
	Short: "Sudoku configuration and puzzle generator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg = zap.NewDevelopmentConfig()
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func main() {
	mainCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	if err := mainCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
