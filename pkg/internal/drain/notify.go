package drain

import "github.com/joeydtaylor/structura/pkg/internal/types"

func (w *Worker) notifySerializationFailure(rec types.Record, err error) {
	if w.diagnostics == nil {
		return
	}
	w.diagnostics.Error(
		"Record not serializable; emitting fallback record",
		"event", "SerializeRecord",
		"result", "FAILURE",
		"message", rec.Message,
		"level", rec.Level.String(),
		"error", err,
	)
}

func (w *Worker) notifyWriteFailure(err error) {
	if w.diagnostics == nil {
		return
	}
	w.diagnostics.Error(
		"Write to output stream failed; record dropped",
		"event", "WriteRecord",
		"result", "FAILURE",
		"error", err,
	)
}

func (w *Worker) notifyFlushFailure(err error) {
	if w.diagnostics == nil {
		return
	}
	w.diagnostics.Warn(
		"Flush of output stream failed",
		"event", "FlushStream",
		"result", "FAILURE",
		"error", err,
	)
}
