package internallogger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/structura/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// AddSink attaches an additional diagnostic destination under identifier.
func (z *ZapAdapter) AddSink(identifier string, config types.SinkConfig) error {
	z.mu.Lock()
	defer z.mu.Unlock()

	var (
		ws   zapcore.WriteSyncer
		stop func()
	)
	cfg := config.Config
	if cfg == nil {
		cfg = map[string]interface{}{}
	}

	switch config.Type {
	case types.FileSink:
		path, ok := cfg["path"].(string)
		if !ok || path == "" {
			return fmt.Errorf("file path configuration is missing or invalid")
		}
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %v", dir, err)
			}
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %v", path, err)
		}
		stop = func() {
			_ = file.Close()
		}
		ws = zapcore.AddSync(file)
	case types.StdoutSink:
		ws = zapcore.Lock(os.Stdout)
	case types.StderrSink:
		ws = zapcore.Lock(os.Stderr)
	default:
		return fmt.Errorf("unsupported sink type: %s", config.Type)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(z.encConfig), ws, z.atomicLevel)
	z.sinks[identifier] = sinkEntry{core: core, stop: stop}

	z.rebuildLoggerLocked()
	return nil
}

// RemoveSink detaches the sink registered under identifier.
func (z *ZapAdapter) RemoveSink(identifier string) error {
	z.mu.Lock()
	defer z.mu.Unlock()

	entry, ok := z.sinks[identifier]
	if !ok {
		return fmt.Errorf("sink not found: %s", identifier)
	}
	delete(z.sinks, identifier)
	if entry.stop != nil {
		entry.stop()
	}

	z.rebuildLoggerLocked()
	return nil
}

// ListSinks lists the identifiers of all attached sinks.
func (z *ZapAdapter) ListSinks() ([]string, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	identifiers := make([]string, 0, len(z.sinks))
	for id := range z.sinks {
		identifiers = append(identifiers, id)
	}
	return identifiers, nil
}
