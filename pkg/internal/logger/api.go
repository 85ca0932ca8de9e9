// Package logger implements the producer facade. Emit methods gate on the
// engine state, filter by level before any record is built, and hand the
// record to the event queue. Serialization and I/O are strictly the drain
// worker's job, which keeps every emit call non-blocking regardless of how
// slow the output stream is.
package logger

import (
	"context"
	"errors"
	"sync"

	"github.com/joeydtaylor/structura/pkg/internal/record"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// ErrEmptyMessage is returned when an emit call omits the message.
var ErrEmptyMessage = errors.New("logger: message must not be empty")

type Logger struct {
	service  string
	workerID string
	level    types.LogLevel
	queue    types.RecordQueue
	active   func() bool

	hbMu   sync.Mutex
	hbStop chan struct{}
	hbDone chan struct{}
}

// New constructs the facade. active reports whether the owning engine is
// still in its ACTIVE state; a nil active means always active, which tests
// use to exercise the facade in isolation.
func New(service string, workerID string, level types.LogLevel, queue types.RecordQueue, active func() bool) *Logger {
	return &Logger{
		service:  service,
		workerID: workerID,
		level:    level,
		queue:    queue,
		active:   active,
	}
}

// Log builds a record and enqueues it. Records below the configured level
// are discarded before any allocation. keysAndValues are folded into the
// record's fields pairwise; non-string keys are skipped, a trailing orphan
// value is ignored.
func (l *Logger) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) error {
	if l.active != nil && !l.active() {
		return types.ErrNotConfigured
	}
	if level < l.level {
		return nil
	}
	if msg == "" {
		return ErrEmptyMessage
	}
	rec := record.New(level, msg, l.service, l.workerID, foldKeyValues(keysAndValues))
	return l.queue.Enqueue(context.Background(), rec)
}

// Debug emits a debug record.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) error {
	return l.Log(types.DebugLevel, msg, keysAndValues...)
}

// Info emits an informational record.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) error {
	return l.Log(types.InfoLevel, msg, keysAndValues...)
}

// Warn emits a warning record.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) error {
	return l.Log(types.WarnLevel, msg, keysAndValues...)
}

// Error emits an error record.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) error {
	return l.Log(types.ErrorLevel, msg, keysAndValues...)
}

// Critical emits a critical record.
func (l *Logger) Critical(msg string, keysAndValues ...interface{}) error {
	return l.Log(types.CriticalLevel, msg, keysAndValues...)
}

// Level returns the facade's minimum emit level.
func (l *Logger) Level() types.LogLevel {
	return l.level
}

func foldKeyValues(keysAndValues []interface{}) types.Fields {
	limit := len(keysAndValues)
	if limit%2 != 0 {
		limit--
	}
	if limit == 0 {
		return nil
	}

	fields := make(types.Fields, limit/2)
	for i := 0; i < limit; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
