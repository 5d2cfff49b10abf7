package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger the rest of the module depends on.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	// Enabled reports whether entries at level would be written, so callers
	// can skip building expensive fields.
	Enabled(level zapcore.Level) bool

	// With creates a child logger with additional fields.
	With(fields ...zap.Field) Logger
	// Named creates a child logger with the given name segment.
	Named(name string) Logger

	// Zap returns the underlying *zap.Logger.
	Zap() *zap.Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

type zapLogger struct {
	zl *zap.Logger
}

// NewLogger builds a Logger from config. With neither a directory nor
// terminal output the logger discards everything.
func NewLogger(config Config) Logger {
	config.applyDefaults()

	zl := zap.New(getZapCore(config))
	if config.ShowLineNumber {
		zl = zl.WithOptions(zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &zapLogger{zl: zl}
}

// Nop returns a Logger that discards everything. Library types default to it.
func Nop() Logger {
	return &zapLogger{zl: zap.NewNop()}
}

// FromZap wraps an existing *zap.Logger, nil yields Nop.
func FromZap(zl *zap.Logger) Logger {
	if zl == nil {
		return Nop()
	}
	return &zapLogger{zl: zl}
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) {
	l.zl.Debug(msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...zap.Field) {
	l.zl.Info(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...zap.Field) {
	l.zl.Warn(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...zap.Field) {
	l.zl.Error(msg, fields...)
}

func (l *zapLogger) Enabled(level zapcore.Level) bool {
	return l.zl.Core().Enabled(level)
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{zl: l.zl.With(fields...)}
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{zl: l.zl.Named(name)}
}

func (l *zapLogger) Zap() *zap.Logger {
	return l.zl
}

func (l *zapLogger) Sync() error {
	return l.zl.Sync()
}

var _ Logger = (*zapLogger)(nil)
