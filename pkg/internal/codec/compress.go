package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Algorithm identifies a compression codec for the output stream.
type Algorithm string

const (
	CompressNone   Algorithm = "none"
	CompressGzip   Algorithm = "gzip"
	CompressZstd   Algorithm = "zstd"
	CompressSnappy Algorithm = "snappy"
	CompressLZ4    Algorithm = "lz4"
	CompressBrotli Algorithm = "brotli"
)

// ParseAlgorithm converts a config string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompressNone:
		return CompressNone, nil
	case CompressGzip:
		return CompressGzip, nil
	case CompressZstd:
		return CompressZstd, nil
	case CompressSnappy:
		return CompressSnappy, nil
	case CompressLZ4:
		return CompressLZ4, nil
	case CompressBrotli:
		return CompressBrotli, nil
	default:
		return CompressNone, fmt.Errorf("unsupported compression algorithm: %s", s)
	}
}

// FlushWriter is a write stream that can surface buffered bytes on demand.
// The drain worker flushes after every record so a line is visible to the
// collector as soon as it is written; Close finalizes the stream at
// shutdown.
type FlushWriter interface {
	io.Writer
	Flush() error
	Close() error
}

// NewWriter wraps w in the requested compression codec. CompressNone
// returns a passthrough whose Flush and Close are no-ops, so callers treat
// every algorithm uniformly.
func NewWriter(w io.Writer, algorithm Algorithm) (FlushWriter, error) {
	switch algorithm {
	case CompressNone:
		return nopFlushWriter{w}, nil
	case CompressGzip:
		return gzip.NewWriter(w), nil
	case CompressZstd:
		return zstd.NewWriter(w)
	case CompressSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressLZ4:
		return lz4.NewWriter(w), nil
	case CompressBrotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}
}

type nopFlushWriter struct {
	io.Writer
}

func (nopFlushWriter) Flush() error { return nil }
func (nopFlushWriter) Close() error { return nil }
