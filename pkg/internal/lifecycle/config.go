package lifecycle

import (
	"io"
	"os"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/internallogger"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// Config holds everything an engine needs at Configure time. It is owned by
// the lifecycle manager and read-only to every other component afterwards.
type Config struct {
	ServiceName    string
	WorkerID       string
	Level          types.LogLevel
	Output         io.Writer
	QueueCapacity  int
	EnqueueTimeout time.Duration
	Compression    codec.Algorithm
	Diagnostics    types.DiagnosticLogger
}

func defaultConfig() Config {
	return Config{
		Level:       types.InfoLevel,
		Compression: codec.CompressNone,
	}
}

// resolve fills the gaps the options left, falling back to the conventional
// environment variables and finally to fixed defaults.
func (c *Config) resolve() {
	if c.ServiceName == "" {
		c.ServiceName = os.Getenv("SERVICE")
	}
	if c.ServiceName == "" {
		c.ServiceName = "my-service"
	}
	if c.WorkerID == "" {
		c.WorkerID = os.Getenv("POD_NAME")
	}
	if c.WorkerID == "" {
		if host, err := os.Hostname(); err == nil {
			c.WorkerID = host
		}
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Diagnostics == nil {
		c.Diagnostics = internallogger.NewLogger(
			internallogger.LoggerWithFields(map[string]interface{}{
				"service_name": c.ServiceName,
			}),
		)
	}
}

func (c *Config) newSink() (codec.FlushWriter, error) {
	return codec.NewWriter(c.Output, c.Compression)
}
