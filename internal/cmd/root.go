// Package cmd implements the recipectl maintenance commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/logging"
)

// configLoader is swapped in tests.
var configLoader = config.LoadConfig

func NewRootCmd(version string) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "recipectl",
		Short:         "Maintenance commands for the recipebox backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recipectl %s\n", version)
		},
	}
}
