package types

import (
	"context"
	"time"
)

// Reserved JSON keys computed by the engine. Caller-supplied fields using
// one of these keys never replace the system value; they are re-keyed under
// a "fields." prefix so nothing is silently dropped.
const (
	KeyTimestamp = "timestamp"
	KeyLevel     = "level"
	KeyMessage   = "message"
	KeyService   = "service_name"
	KeyWorkerID  = "worker_id"
)

// Fields is an open mapping of caller-supplied structured data. Values must
// be JSON-serializable; the drain worker converts anything that is not into
// a fallback diagnostic record rather than failing the pipeline.
type Fields map[string]interface{}

// Record is one immutable structured log event. It is constructed once at
// enqueue time and read exactly once, by the drain worker, for serialization.
type Record struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
	Service   string
	WorkerID  string
	Fields    Fields
}

// RecordQueue is the hand-off between producer call sites and the single
// drain worker. Enqueue order is preserved through to dequeue order.
type RecordQueue interface {
	// Enqueue adds a record. It blocks only while a bounded queue is full,
	// bounded by the configured enqueue timeout (ErrQueueFull) and by ctx.
	// After CloseAndDrain it fails with ErrLoggerShutdown.
	Enqueue(ctx context.Context, rec Record) error
	// DequeueBlocking blocks until a record is available, returning ok=false
	// only once the queue is closed and fully drained.
	DequeueBlocking() (Record, bool)
	// CloseAndDrain stops new enqueues while keeping queued records
	// available to DequeueBlocking. Idempotent.
	CloseAndDrain()
	// Len reports the number of queued records.
	Len() int
}
