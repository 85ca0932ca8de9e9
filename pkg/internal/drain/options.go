package drain

import (
	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// WithDiagnostics attaches the secondary channel for per-record incident
// reports. Without it, failures are recovered silently.
func WithDiagnostics(diagnostics types.DiagnosticLogger) types.Option[*Worker] {
	return func(w *Worker) {
		w.diagnostics = diagnostics
	}
}

// WithEncoder overrides the record encoder. The default emits one JSON
// object per line.
func WithEncoder(encoder codec.Encoder) types.Option[*Worker] {
	return func(w *Worker) {
		if encoder != nil {
			w.encoder = encoder
		}
	}
}

// WithFlusher is called after every written record. Buffered and compressed
// output streams use it to keep lines visible to the collector.
func WithFlusher(flush func() error) types.Option[*Worker] {
	return func(w *Worker) {
		w.flush = flush
	}
}
