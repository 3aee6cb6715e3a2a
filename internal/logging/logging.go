// Package logging configures the process-wide zap logger and hands out
// per-subsystem named loggers, grounded on cmd/cli/ai.go's
// zap.NewProduction/zap.ReplaceGlobals pattern and on the zap.L().Sugar()
// call sites scattered through core/storage.go and friends.
package logging

import (
	"mcpkg/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a production or development zap logger from cfg.Logging and
// installs it as the process-wide global logger. Subsequent calls to
// zap.L() (and Named, below) use this configuration.
func Init(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Level == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// Named returns a logger scoped to one mcpkg subsystem (registry,
// download, cache, provider, activate), so log lines can be filtered by
// component the way the teacher's own per-module logrus/zap call sites
// are.
func Named(subsystem string) *zap.Logger {
	return zap.L().Named(subsystem)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
