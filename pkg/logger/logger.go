package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger this package builds. It is an
// AtomicLevel rather than a value baked straight into a core so a
// future runtime level change (e.g. a signal handler) could apply
// without rebuilding anything; nothing currently mutates it after
// NewLogger runs.
var level = zap.NewAtomicLevel()

// NewLogger builds a JSON logger from zap's production Config rather
// than assembling a zapcore.Core by hand, and attaches base directly
// via zap.Fields at Build time so run_id/symbol (cmd/replay's callers)
// land on every line a run emits, including ones logged before a
// separate With(...) call would otherwise get a chance to run.
func NewLogger(lvl string, base ...zap.Field) (*zap.Logger, error) {
	level.SetLevel(parseLevel(lvl))

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Sampling = nil // a replay run logs too rarely for sampling to matter, and would only ever hide malformed-row warnings
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if len(base) > 0 {
		opts = append(opts, zap.Fields(base...))
	}

	log, err := cfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return log, nil
}

func parseLevel(lvl string) zapcore.Level {
	switch lvl {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
