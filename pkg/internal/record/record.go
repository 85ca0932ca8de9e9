// Package record builds and serializes the immutable log events that flow
// from the logger facade through the event queue to the drain worker.
//
// The merge policy is deterministic: system-computed keys always win a
// collision, and the caller's colliding value is re-keyed under "fields."
// so it survives into the serialized record instead of being dropped.
package record

import (
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// reserved is the set of JSON keys the engine computes itself.
var reserved = map[string]struct{}{
	types.KeyTimestamp: {},
	types.KeyLevel:     {},
	types.KeyMessage:   {},
	types.KeyService:   {},
	types.KeyWorkerID:  {},
}

// New constructs a Record. The timestamp is fixed here, at enqueue time, not
// when the drain worker eventually serializes the record. The fields map is
// copied, so the caller may reuse or mutate its map afterwards.
func New(level types.LogLevel, msg string, service string, workerID string, fields types.Fields) types.Record {
	rec := types.Record{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   msg,
		Service:   service,
		WorkerID:  workerID,
	}
	if len(fields) == 0 {
		return rec
	}

	merged := make(types.Fields, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		if _, ok := reserved[key]; ok {
			merged["fields."+key] = value
			continue
		}
		merged[key] = value
	}
	rec.Fields = merged
	return rec
}
