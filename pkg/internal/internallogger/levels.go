package internallogger

import (
	"github.com/joeydtaylor/structura/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// convertLevel maps a types.LogLevel to a zap level. Critical maps to
// zap's error level: the diagnostic channel must never panic or exit the
// process on behalf of the engine.
func convertLevel(level types.LogLevel) zapcore.Level {
	switch level {
	case types.DebugLevel:
		return zapcore.DebugLevel
	case types.InfoLevel:
		return zapcore.InfoLevel
	case types.WarnLevel:
		return zapcore.WarnLevel
	case types.ErrorLevel, types.CriticalLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return types.DebugLevel
	case zapcore.InfoLevel:
		return types.InfoLevel
	case zapcore.WarnLevel:
		return types.WarnLevel
	case zapcore.ErrorLevel:
		return types.ErrorLevel
	default:
		return types.InfoLevel
	}
}
