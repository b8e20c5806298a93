// Package logger holds the process-wide zap logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. It is a no-op logger until Init is called so that
// packages can log from tests without initialising anything.
var Log = zap.NewNop()

// Init builds the shared logger. With a log file the production JSON encoder
// writes to the file and stdout; otherwise the development console encoder is used.
func Init(level string, logFile string) error {
	var config zap.Config

	if logFile != "" {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{logFile, "stdout"}
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	built, err := config.Build()
	if err != nil {
		return err
	}

	Log = built
	return nil
}

// parseLevel maps a config level name to a zap level, falling back to info.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Named returns a child of the shared logger scoped to a component.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
