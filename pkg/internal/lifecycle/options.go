package lifecycle

import (
	"io"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// Option configures an engine at Configure time.
type Option func(*Config)

// WithServiceName sets the service name stamped on every record. Defaults
// to $SERVICE, then "my-service".
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithWorkerID sets the worker identity stamped on every record. Defaults
// to $POD_NAME, then the hostname.
func WithWorkerID(workerID string) Option {
	return func(c *Config) {
		c.WorkerID = workerID
	}
}

// WithLogLevel sets the minimum level to emit, by name. Records below it
// are discarded at the facade, never enqueued.
func WithLogLevel(levelStr string) Option {
	return func(c *Config) {
		c.Level = types.ParseLevel(levelStr)
	}
}

// WithOutput redirects the primary record stream. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		if w != nil {
			c.Output = w
		}
	}
}

// WithQueueCapacity bounds the event queue. Zero or negative, the default,
// means unbounded: producers never block, at the cost of unbounded memory
// under sustained overload.
func WithQueueCapacity(capacity int) Option {
	return func(c *Config) {
		c.QueueCapacity = capacity
	}
}

// WithEnqueueTimeout bounds how long a producer blocks on a full bounded
// queue before its emit call fails with types.ErrQueueFull.
func WithEnqueueTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.EnqueueTimeout = timeout
	}
}

// WithCompression wraps the output stream in the given codec. Each record
// is still flushed through the compressor as soon as it is written.
func WithCompression(algorithm codec.Algorithm) Option {
	return func(c *Config) {
		c.Compression = algorithm
	}
}

// WithDiagnostics overrides the engine's secondary channel.
func WithDiagnostics(diagnostics types.DiagnosticLogger) Option {
	return func(c *Config) {
		if diagnostics != nil {
			c.Diagnostics = diagnostics
		}
	}
}
