package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/acharjeesuvo/EvalMind/internal/config"
	"github.com/acharjeesuvo/EvalMind/internal/repository"
)

const checkTimeout = 10 * time.Second

func checkDBCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "checkdb",
		Short: "Verify that the configured database is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()
			return checkDB(ctx, cfg.Database.DSN(), repository.CheckConnection, cmd.OutOrStdout())
		},
	}
}

// checkDB reports the outcome of ping on out and returns its error.
func checkDB(ctx context.Context, dsn string, ping func(context.Context, string) error, out io.Writer) error {
	if err := ping(ctx, dsn); err != nil {
		fmt.Fprintf(out, "Connection failed: %v\n", err)
		return err
	}
	fmt.Fprintln(out, "Connected successfully to the database.")
	return nil
}
