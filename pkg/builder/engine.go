package builder

import (
	"io"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/lifecycle"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// Option configures an engine at Configure time.
type Option = lifecycle.Option

// CompressionAlgorithm identifies an output-stream codec.
type CompressionAlgorithm = codec.Algorithm

const (
	CompressNone   = codec.CompressNone
	CompressGzip   = codec.CompressGzip
	CompressZstd   = codec.CompressZstd
	CompressSnappy = codec.CompressSnappy
	CompressLZ4    = codec.CompressLZ4
	CompressBrotli = codec.CompressBrotli
)

// EngineWithServiceName sets the service name stamped on every record.
func EngineWithServiceName(name string) Option {
	return lifecycle.WithServiceName(name)
}

// EngineWithWorkerID sets the worker identity stamped on every record.
func EngineWithWorkerID(workerID string) Option {
	return lifecycle.WithWorkerID(workerID)
}

// EngineWithLogLevel sets the minimum level to emit, by name.
func EngineWithLogLevel(levelStr string) Option {
	return lifecycle.WithLogLevel(levelStr)
}

// EngineWithOutput redirects the primary record stream.
func EngineWithOutput(w io.Writer) Option {
	return lifecycle.WithOutput(w)
}

// EngineWithQueueCapacity bounds the event queue; zero means unbounded.
func EngineWithQueueCapacity(capacity int) Option {
	return lifecycle.WithQueueCapacity(capacity)
}

// EngineWithEnqueueTimeout bounds the producer-side wait on a full queue.
func EngineWithEnqueueTimeout(timeout time.Duration) Option {
	return lifecycle.WithEnqueueTimeout(timeout)
}

// EngineWithCompression wraps the output stream in a compression codec.
func EngineWithCompression(algorithm CompressionAlgorithm) Option {
	return lifecycle.WithCompression(algorithm)
}

// EngineWithDiagnostics overrides the engine's secondary channel.
func EngineWithDiagnostics(diagnostics types.DiagnosticLogger) Option {
	return lifecycle.WithDiagnostics(diagnostics)
}

// EngineFromFile loads engine settings from a TOML file.
func EngineFromFile(path string) (Option, error) {
	return lifecycle.FromFile(path)
}
