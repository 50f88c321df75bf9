package main

import (
	"log/slog"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/logger"
)

// newLogger builds the process logger from the effective config, raising
// the level to debug under --verbose regardless of the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	logCfg := cfg.Logging
	logCfg.Verbose = verbose
	return logger.NewLogger(logCfg, nil)
}
