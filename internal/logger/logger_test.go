package logger

import (
	"path/filepath"
	"testing"

	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_WritesFile(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Logging.FilePath = filepath.Join(t.TempDir(), "nested", "app.log")

	log, err := NewLogger(cfg)
	require.NoError(t, err)
	log.Infow("hello", "k", "v")
	_ = log.Sync()

	assert.FileExists(t, cfg.Logging.FilePath)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(types.LogLevelDebug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(types.LogLevelInfo))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(types.LogLevelWarn))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(types.LogLevelError))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewWithZap(zap.New(core)).With("request_id", "abc")

	log.Infow("request started")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["request_id"])
}
