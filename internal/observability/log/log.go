// Package log builds the zap loggers used by the demo binaries.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	innerLogger          *zap.Logger
	loggerInitializeOnce sync.Once
)

// New builds a production JSON logger writing to stderr. The first logger
// built becomes the one returned by Provide.
func New(level zapcore.Level) *zap.Logger {
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	loggerInitializeOnce.Do(func() { innerLogger = logger })

	return logger
}

// Provide returns the first logger built by New, or nil if none exists yet.
func Provide() *zap.Logger {
	return innerLogger
}
