// Package codec defines how records leave the drain worker: the encoder that
// renders a record onto the output stream and the optional compression
// layer wrapped around that stream.
package codec

import (
	"io"

	"github.com/joeydtaylor/structura/pkg/internal/record"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// Encoder renders one record onto w. Implementations must emit exactly one
// line per record so the output stays machine-parseable by line.
type Encoder interface {
	Encode(w io.Writer, rec types.Record) error
}

// JSONLineEncoder encodes each record as one JSON object per line. This is
// the engine's wire format.
type JSONLineEncoder struct{}

func NewJSONLineEncoder() *JSONLineEncoder {
	return &JSONLineEncoder{}
}

func (e *JSONLineEncoder) Encode(w io.Writer, rec types.Record) error {
	return record.Encode(w, rec)
}
