package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// holder lets atomic.Pointer carry an interface value.
type holder struct {
	logger Logger
}

var (
	global    atomic.Pointer[holder]
	nopLogger = Nop()
)

// Global returns the process logger, Nop until Init or SetGlobal runs.
func Global() Logger {
	if h := global.Load(); h != nil {
		return h.logger
	}
	return nopLogger
}

// SetGlobal replaces the process logger; nil restores Nop.
func SetGlobal(logger Logger) {
	if logger == nil {
		logger = nopLogger
	}
	global.Store(&holder{logger: logger})
}

// Init builds a logger from config and installs it globally.
func Init(config Config) Logger {
	logger := NewLogger(config)
	SetGlobal(logger)
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	Global().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Global().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Global().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Global().Error(msg, fields...)
}

// Named creates a child of the global logger.
func Named(name string) Logger {
	return Global().Named(name)
}

func Sync() error {
	return Global().Sync()
}
