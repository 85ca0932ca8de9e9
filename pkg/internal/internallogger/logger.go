// Package internallogger implements the engine's diagnostic channel on top
// of zap. The drain worker reports serialization and write incidents here;
// lifecycle transitions are traced here as well. Output defaults to stderr
// so diagnostics never interleave with the primary record stream.
package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/structura/pkg/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	level         types.LogLevel
	initialFields map[string]interface{}
	writer        zapcore.WriteSyncer
}

// Option configures the diagnostic logger at construction time.
type Option func(*config)

type sinkEntry struct {
	core zapcore.Core
	stop func()
}

// ZapAdapter adapts a zap.Logger to types.DiagnosticLogger, with named
// sinks that can be attached and detached at runtime.
type ZapAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	sinks       map[string]sinkEntry
}

// NewLogger initializes a diagnostic logger with the provided options.
func NewLogger(options ...Option) *ZapAdapter {
	cfg := config{
		level:  types.InfoLevel,
		writer: zapcore.Lock(os.Stderr),
	}
	for _, option := range options {
		option(&cfg)
	}

	encConfig := zap.NewProductionEncoderConfig()
	encConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	atomicLevel := zap.NewAtomicLevelAt(convertLevel(cfg.level))
	baseCore := zapcore.NewCore(zapcore.NewJSONEncoder(encConfig), cfg.writer, atomicLevel)

	var baseFields []zap.Field
	for key, value := range cfg.initialFields {
		if key == "" {
			continue
		}
		baseFields = append(baseFields, zap.Any(key, value))
	}

	z := &ZapAdapter{
		atomicLevel: atomicLevel,
		encConfig:   encConfig,
		baseCore:    baseCore,
		baseFields:  baseFields,
		sinks:       make(map[string]sinkEntry),
	}
	z.rebuildLoggerLocked()
	return z
}

func (z *ZapAdapter) rebuildLoggerLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.baseCore)
	for _, entry := range z.sinks {
		cores = append(cores, entry.core)
	}
	logger := zap.New(zapcore.NewTee(cores...))
	if len(z.baseFields) > 0 {
		logger = logger.With(z.baseFields...)
	}
	z.logger = logger
}
