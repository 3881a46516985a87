package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/config"
)

// newLogger builds a development logger for the console format and a
// production logger for the json format. Both write to stderr.
func newLogger(cfg config.Logging) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
