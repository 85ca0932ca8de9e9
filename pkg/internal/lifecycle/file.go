package lifecycle

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

type fileConfig struct {
	ServiceName    string `toml:"service_name"`
	WorkerID       string `toml:"worker_id"`
	LogLevel       string `toml:"log_level"`
	QueueCapacity  int    `toml:"queue_capacity"`
	EnqueueTimeout string `toml:"enqueue_timeout"`
	Compression    string `toml:"compression"`
}

// FromFile loads engine settings from a TOML file and returns them as a
// single Option. Settings absent from the file are left untouched, so later
// options still override and defaults still apply.
func FromFile(path string) (Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	var enqueueTimeout time.Duration
	if fc.EnqueueTimeout != "" {
		enqueueTimeout, err = time.ParseDuration(fc.EnqueueTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: enqueue_timeout: %w", path, err)
		}
	}

	compression := codec.CompressNone
	if fc.Compression != "" {
		compression, err = codec.ParseAlgorithm(fc.Compression)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	return func(c *Config) {
		if fc.ServiceName != "" {
			c.ServiceName = fc.ServiceName
		}
		if fc.WorkerID != "" {
			c.WorkerID = fc.WorkerID
		}
		if fc.LogLevel != "" {
			c.Level = types.ParseLevel(fc.LogLevel)
		}
		if fc.QueueCapacity != 0 {
			c.QueueCapacity = fc.QueueCapacity
		}
		if fc.EnqueueTimeout != "" {
			c.EnqueueTimeout = enqueueTimeout
		}
		if fc.Compression != "" {
			c.Compression = compression
		}
	}, nil
}
