package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger
)

// Execute runs the avis CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "avis",
		Short:         "Audio spectrum analyzer for serial LED matrix displays",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				cfg := zap.NewProductionConfig()
				cfg.OutputPaths = []string{"stderr"}
				logger, err = cfg.Build()
			}
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose development logging")

	root.AddCommand(runCmd(), devicesCmd(), probeCmd(), windowsCmd())
	return root.Execute()
}
