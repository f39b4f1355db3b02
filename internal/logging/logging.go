// Package logging builds the zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/acharjeesuvo/EvalMind/internal/config"
)

// New returns a development (console) or production (JSON) logger at the configured level.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}
