package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func newMigrateCommand(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the events table and its indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			logger := config.NewLogger(os.Stdout, cfg.Observability)

			store, closeStore, err := openPostgresStore(cmd.Context(), cfg.Postgres, observability{
				logger: oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler()),
			})
			if err != nil {
				return err
			}
			defer closeStore()

			return store.CreateSchema(cmd.Context())
		},
	}
}
