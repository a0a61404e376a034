// Package logging wraps zap behind the small structured surface the
// commands use.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs command progress as structured key/value pairs.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger writing to stderr, keeping stdout
// free for command results. Info level by default, debug when verbose.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{base.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
