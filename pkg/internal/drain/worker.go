// Package drain runs the single background consumer that owns serialization
// and output I/O. Exactly one worker exists per engine lifetime; because it
// is the only writer to the output stream, no write lock exists beyond the
// queue's own synchronization.
package drain

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/record"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

type Worker struct {
	queue       types.RecordQueue
	out         io.Writer
	flush       func() error
	encoder     codec.Encoder
	diagnostics types.DiagnosticLogger
	done        chan struct{}
	started     int32
	buf         bytes.Buffer
}

// NewWorker constructs a drain worker reading from queue and writing to out.
func NewWorker(queue types.RecordQueue, out io.Writer, options ...types.Option[*Worker]) *Worker {
	w := &Worker{
		queue:   queue,
		out:     out,
		encoder: codec.NewJSONLineEncoder(),
		done:    make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Start launches the worker goroutine. Subsequent calls are no-ops.
func (w *Worker) Start() {
	if !atomic.CompareAndSwapInt32(&w.started, 0, 1) {
		return
	}
	go w.run()
}

// Done is closed once the worker has drained the queue and exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) run() {
	defer close(w.done)

	for {
		rec, ok := w.queue.DequeueBlocking()
		if !ok {
			return
		}
		w.emit(rec)
	}
}

// emit serializes one record and writes it to the output stream. A failure
// of either step is reported on the diagnostic channel and never halts the
// loop; a serialization failure is additionally replaced by a fallback
// record so the event is not lost without trace on the primary stream.
func (w *Worker) emit(rec types.Record) {
	w.buf.Reset()
	if err := w.encoder.Encode(&w.buf, rec); err != nil {
		w.notifySerializationFailure(rec, err)
		w.buf.Reset()
		if err := w.encoder.Encode(&w.buf, record.Fallback(rec, err)); err != nil {
			return
		}
	}

	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		w.notifyWriteFailure(err)
		return
	}
	if w.flush != nil {
		if err := w.flush(); err != nil {
			w.notifyFlushFailure(err)
		}
	}
}
