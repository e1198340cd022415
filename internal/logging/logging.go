// Package logging configures a single process-wide zap logger, lazily
// initialized on first use and overridable via BATTLECORE_LOG_LEVEL, the
// way rgonzalez12-dbd-analytics's internal/log wraps a package-level
// singleton around an env-driven level.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nicoberrocal/battlecore/internal/config"
)

var (
	once   sync.Once
	logger *zap.Logger
)

func level() zapcore.Level {
	switch strings.ToLower(os.Getenv(config.EnvLogLevel)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func initialize() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level())
	cfg.EncoderConfig.TimeKey = "" // deterministic CLI output; no timestamps
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the process-wide logger, initializing it on first call.
func L() *zap.Logger {
	once.Do(initialize)
	return logger
}

// Sync flushes any buffered log entries; callers should defer it in main.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
