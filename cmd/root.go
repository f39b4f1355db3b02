package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/internal/config"
	"github.com/acharjeesuvo/EvalMind/internal/logging"
)

const defaultConfigPath = "configs/config.yml"

// options are the global flags shared by every subcommand.
type options struct {
	configPath string
}

// RootCommand creates and returns the root command.
func RootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "evalmind",
		Short:         "Annotation service for reviewing model-generated image reasoning",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(
		serveCommand(opts),
		checkDBCommand(opts),
		migrateCommand(opts),
	)

	return rootCmd
}

// load reads the config and builds the logger.
func (o *options) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
