package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// writerRegistry tracks lumberjack writers so CloseAllWriters can release files.
var (
	writerRegistry   []*lumberjack.Logger
	writerRegistryMu sync.Mutex
)

// newFileWriter creates a rotating file writer in config.Director.
func newFileWriter(config Config) *lumberjack.Logger {
	_ = os.MkdirAll(config.Director, 0o755)

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, config.FileName),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}

	writerRegistryMu.Lock()
	writerRegistry = append(writerRegistry, writer)
	writerRegistryMu.Unlock()

	return writer
}

// getWriteSyncer combines stderr and file output according to config.
// It returns nil when no output is enabled.
func getWriteSyncer(config Config) zapcore.WriteSyncer {
	var syncers []zapcore.WriteSyncer
	if config.LogInTerminal {
		syncers = append(syncers, zapcore.Lock(os.Stderr))
	}
	if config.Director != "" {
		syncers = append(syncers, zapcore.AddSync(newFileWriter(config)))
	}

	switch len(syncers) {
	case 0:
		return nil
	case 1:
		return syncers[0]
	default:
		return zapcore.NewMultiWriteSyncer(syncers...)
	}
}

// CloseAllWriters closes all file writers created by this package.
func CloseAllWriters() error {
	writerRegistryMu.Lock()
	defer writerRegistryMu.Unlock()

	var lastErr error
	for _, w := range writerRegistry {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	writerRegistry = nil
	return lastErr
}
