package record

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// SerializationError reports a record whose field values could not be
// rendered as JSON. It never reaches producer code; the drain worker
// recovers it into a fallback record.
type SerializationError struct {
	Message string
	Err     error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("record %q not serializable: %v", e.Message, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Encode writes rec as one JSON object followed by a newline. Key order
// within the object is not part of the contract; each line is independently
// machine-parseable.
func Encode(w io.Writer, rec types.Record) error {
	out := make(map[string]interface{}, len(rec.Fields)+5)
	for key, value := range rec.Fields {
		out[key] = value
	}
	out[types.KeyTimestamp] = rec.Timestamp.Format(time.RFC3339Nano)
	out[types.KeyLevel] = rec.Level.String()
	out[types.KeyMessage] = rec.Message
	out[types.KeyService] = rec.Service
	if rec.WorkerID != "" {
		out[types.KeyWorkerID] = rec.WorkerID
	}

	line, err := json.Marshal(out)
	if err != nil {
		return &SerializationError{Message: rec.Message, Err: err}
	}
	line = append(line, '\n')
	_, err = w.Write(line)
	return err
}

// Fallback derives a self-describing replacement for a record that failed
// serialization. Every field is a plain string, so the result is always
// serializable.
func Fallback(rec types.Record, cause error) types.Record {
	rep := types.Record{
		Timestamp: rec.Timestamp,
		Level:     types.ErrorLevel,
		Message:   "log record dropped: fields not serializable",
		Service:   rec.Service,
		WorkerID:  rec.WorkerID,
		Fields: types.Fields{
			"original_message": rec.Message,
			"original_level":   rec.Level.String(),
			"error":            cause.Error(),
		},
	}
	return rep
}
