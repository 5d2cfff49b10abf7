package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Director)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.True(t, cfg.LogInTerminal)
}

func TestConfigTransportLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"dpanic", zapcore.DPanicLevel},
		{"panic", zapcore.PanicLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			assert.Equal(t, tt.expected, cfg.TransportLevel())
		})
	}
}

func TestConfigZapEncodeLevel(t *testing.T) {
	for _, name := range []string{"LowercaseLevelEncoder", "LowercaseColorLevelEncoder", "CapitalLevelEncoder", "CapitalColorLevelEncoder", "unknown"} {
		cfg := Config{EncodeLevel: name}
		assert.NotNil(t, cfg.ZapEncodeLevel(), name)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	assert.Equal(t, "rucaptcha.log", cfg.FileName)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 10, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAge)
}

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogInTerminal = false
	cfg.Director = dir
	cfg.Format = "json"

	logger := NewLogger(cfg)
	logger.Info("captcha built", zap.Int("length", 4))
	logger.Debug("filtered out")
	require.NoError(t, CloseAllWriters())

	data, err := os.ReadFile(filepath.Join(dir, "rucaptcha.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"captcha built"`)
	assert.Contains(t, string(data), `"length":4`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNewLoggerWithoutOutputsIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogInTerminal = false

	logger := NewLogger(cfg)
	require.NotNil(t, logger)
	logger.Error("nowhere")
}

func TestLoggerChildren(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Named("captcha").With(zap.String("format", "png")).Info("built")
	logger.With(zap.Error(errors.New("boom"))).Error("failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "captcha", entries[0].LoggerName)
	assert.Equal(t, "png", entries[0].ContextMap()["format"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestLoggerEnabled(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	assert.False(t, logger.Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Enabled(zapcore.WarnLevel))
	assert.False(t, Nop().Enabled(zapcore.ErrorLevel))
}

func TestFromZapNil(t *testing.T) {
	logger := FromZap(nil)
	require.NotNil(t, logger)
	logger.Info("discarded")
}

func TestGlobalLogger(t *testing.T) {
	original := Global()
	t.Cleanup(func() { SetGlobal(original) })

	require.NotNil(t, original)

	core, logs := observer.New(zapcore.InfoLevel)
	SetGlobal(FromZap(zap.New(core)))

	Info("global info")
	Warn("global warn")
	Debug("hidden")
	Named("cli").Error("named error")

	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, "cli", logs.All()[2].LoggerName)
}
