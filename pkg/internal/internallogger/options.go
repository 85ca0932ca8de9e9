package internallogger

import (
	"github.com/joeydtaylor/structura/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel configures the minimum diagnostic level by name.
func LoggerWithLevel(levelStr string) Option {
	return func(cfg *config) {
		cfg.level = types.ParseLevel(levelStr)
	}
}

// LoggerWithFields attaches fields to every diagnostic line.
func LoggerWithFields(fields map[string]interface{}) Option {
	return func(cfg *config) {
		if cfg.initialFields == nil {
			cfg.initialFields = map[string]interface{}{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.initialFields[key] = value
		}
	}
}

// LoggerWithWriteSyncer redirects the base sink. Tests use this to capture
// diagnostics in memory.
func LoggerWithWriteSyncer(ws zapcore.WriteSyncer) Option {
	return func(cfg *config) {
		if ws != nil {
			cfg.writer = ws
		}
	}
}
