// Package logging provides the process-wide zap logger.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

var (
	// Logger is the shared logger. It defaults to a no-op logger so
	// packages can log before Initialize runs (and in tests).
	Logger = zap.NewNop()
	Sugar  = Logger.Sugar()
)

// Initialize builds the global logger from LOG_LEVEL and LOG_FORMAT.
func Initialize() error {
	var cfg zap.Config
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := zap.ParseAtomicLevel(strings.ToLower(lvl))
		if err == nil {
			cfg.Level = level
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger
	Sugar = logger.Sugar()
	return nil
}

// Sync flushes buffered log entries. Safe to call at shutdown.
func Sync() {
	_ = Logger.Sync()
}
