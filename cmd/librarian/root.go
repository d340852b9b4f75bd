package main

import (
	"github.com/spf13/cobra"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
)

type rootFlags struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "librarian",
		Short:         "Library circulation engine: reservations, borrowing, returns and waitlist notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the YAML config file")

	rootCmd.AddCommand(
		newServeCommand(flags),
		newMigrateCommand(flags),
	)

	return rootCmd
}
