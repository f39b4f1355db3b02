package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/internal/repository"
)

func migrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := repository.NewPostgresDB(cmd.Context(), cfg.Database.DSN(), repository.PoolOptions{}, logger)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			return repository.MigrateDB(db, logger)
		},
	}
}
