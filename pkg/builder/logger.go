package builder

import (
	"go.uber.org/zap/zapcore"

	"github.com/joeydtaylor/structura/pkg/internal/internallogger"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// DiagnosticLogger is the engine's secondary channel.
type DiagnosticLogger = types.DiagnosticLogger

// SinkConfig configures an additional diagnostic destination.
type SinkConfig = types.SinkConfig

const (
	FileSink   = types.FileSink
	StdoutSink = types.StdoutSink
	StderrSink = types.StderrSink
)

// NewDiagnosticLogger creates a zap-backed diagnostic logger. It writes to
// stderr by default so diagnostics never interleave with the record stream.
func NewDiagnosticLogger(options ...internallogger.Option) DiagnosticLogger {
	return internallogger.NewLogger(options...)
}

// DiagnosticsWithLevel sets the minimum diagnostic level by name.
func DiagnosticsWithLevel(levelStr string) internallogger.Option {
	return internallogger.LoggerWithLevel(levelStr)
}

// DiagnosticsWithFields attaches fields to every diagnostic line.
func DiagnosticsWithFields(fields map[string]interface{}) internallogger.Option {
	return internallogger.LoggerWithFields(fields)
}

// DiagnosticsWithWriteSyncer redirects the base diagnostic sink.
func DiagnosticsWithWriteSyncer(ws zapcore.WriteSyncer) internallogger.Option {
	return internallogger.LoggerWithWriteSyncer(ws)
}
