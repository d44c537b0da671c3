// Package logging configures structured logging for Splay's engine
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CreateLogger produces a structured Logger for an engine component,
// writing to stderr at the given level
func CreateLogger(component string, level zapcore.Level) (*zap.Logger, error) {
	conf := zap.NewProductionConfig()
	conf.Level = zap.NewAtomicLevelAt(level)
	conf.OutputPaths = []string{"stderr"}
	logger, err := conf.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(component), nil
}

// CreateNopLogger produces a Logger which discards all messages
func CreateNopLogger() *zap.Logger {
	return zap.NewNop()
}
