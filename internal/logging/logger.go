// Package logging builds the zap loggers used by the shells.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// Encodings accepted by New.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// New builds a logger writing to the given output paths. level falls back to
// LOG_LEVEL and then to info when empty or invalid.
func New(level, encoding string, outputs ...string) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(resolveLevel(level))); err != nil {
		_ = atomic.UnmarshalText([]byte(defaultLevel))
	}

	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	if encoding != EncodingConsole {
		encoding = EncodingJSON
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "severity",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	if encoding == EncodingConsole {
		encoderCfg.TimeKey = ""
		encoderCfg.CallerKey = ""
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:             atomic,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

func resolveLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	}
	if level == "" {
		return defaultLevel
	}
	return level
}
