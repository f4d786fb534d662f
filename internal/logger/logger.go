package logger

import (
	"os"
	"path/filepath"

	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger creates a logger that writes JSON to stdout and, when configured,
// to a log file as well.
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.EffectiveLogLevel()))
	zapConfig.OutputPaths = []string{"stdout"}

	if path := cfg.Logging.FilePath; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, path)
	}

	if cfg.Deployment.Debug {
		zapConfig.Development = true
		zapConfig.Sampling = nil
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return NewWithZap(zapLogger), nil
}

// NewWithZap wraps an existing zap logger, mostly useful in tests
func NewWithZap(l *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: l.Sugar(),
	}
}

// NewNoopLogger returns a logger that discards everything
func NewNoopLogger() *Logger {
	return NewWithZap(zap.NewNop())
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

func parseLevel(level types.LogLevel) zapcore.Level {
	switch level {
	case types.LogLevelDebug:
		return zapcore.DebugLevel
	case types.LogLevelWarn:
		return zapcore.WarnLevel
	case types.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
