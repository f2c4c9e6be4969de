// Package logger builds the structured zap loggers shared by the commands and services.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger tagged with the given service name.
// Falls back to a no-op logger if the configuration cannot be built.
func New(service string) *zap.SugaredLogger {
	return NewWithLevel(service, "info")
}

// NewWithLevel is New with an explicit minimum level ("debug", "info", "warn", "error").
// Unknown levels default to info.
func NewWithLevel(service, level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.InitialFields = map[string]any{"service": service}

	log, err := config.Build()
	if err != nil {
		return NewNop()
	}

	return log.Sugar()
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
