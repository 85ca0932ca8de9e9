// Package joblog tracks one unit of work across multiple log records. A Job
// carries a trace ID and job ID on every record it emits, and guarantees
// exactly one terminal record, success or failure, on every exit path.
package joblog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// ErrEnded is returned by emit methods once the job's terminal record has
// been written; an ended job is inert.
var ErrEnded = errors.New("joblog: job already ended")

type Job struct {
	logger  types.Logger
	event   string
	traceID string
	jobID   string
	start   time.Time
	static  types.Fields

	mu    sync.Mutex
	final types.Fields
	ended bool
}

// Begin opens a job scope and emits the started record under the job's
// event name. The returned handle must be closed with End (typically
// deferred) or driven via Run.
func Begin(l types.Logger, event string, options ...Option) *Job {
	j := &Job{
		logger: l,
		event:  event,
		start:  time.Now(),
	}
	for _, option := range options {
		option(j)
	}
	if j.traceID == "" {
		j.traceID = newTraceID()
	}
	if j.jobID == "" {
		j.jobID = newJobID()
	}

	startEvent := j.event
	if startEvent == "" {
		startEvent = "job_started"
	}
	kvs := j.baseKeyValues(startEvent, "running")
	_ = j.logger.Log(types.InfoLevel, "Job started", kvs...)
	return j
}

// TraceID returns the correlation identifier shared by all of this job's
// records.
func (j *Job) TraceID() string { return j.traceID }

// JobID returns the job identifier.
func (j *Job) JobID() string { return j.jobID }

// Progress emits an intermediate record with the elapsed time so far. If a
// "progress" key is supplied its value is surfaced in the message.
func (j *Job) Progress(keysAndValues ...interface{}) error {
	j.mu.Lock()
	if j.ended {
		j.mu.Unlock()
		return ErrEnded
	}
	elapsedMS := j.elapsedMS()
	j.mu.Unlock()

	msg := "Job in progress"
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok && key == "progress" {
			msg = fmt.Sprintf("Job progress: %v%%", keysAndValues[i+1])
			break
		}
	}

	kvs := j.baseKeyValues("job_progress", "running")
	kvs = append(kvs, "elapsed_ms", elapsedMS)
	kvs = append(kvs, keysAndValues...)
	return j.logger.Log(types.InfoLevel, msg, kvs...)
}

// Info emits an informational record correlated with this job.
func (j *Job) Info(event string, msg string, keysAndValues ...interface{}) error {
	return j.emit(types.InfoLevel, event, "info", msg, keysAndValues)
}

// Warn emits a warning record correlated with this job.
func (j *Job) Warn(event string, msg string, keysAndValues ...interface{}) error {
	return j.emit(types.WarnLevel, event, "warning", msg, keysAndValues)
}

// Debug emits a debug record correlated with this job.
func (j *Job) Debug(event string, msg string, keysAndValues ...interface{}) error {
	return j.emit(types.DebugLevel, event, "debug", msg, keysAndValues)
}

func (j *Job) emit(level types.LogLevel, event string, status string, msg string, keysAndValues []interface{}) error {
	j.mu.Lock()
	if j.ended {
		j.mu.Unlock()
		return ErrEnded
	}
	j.mu.Unlock()

	kvs := j.baseKeyValues(event, status)
	kvs = append(kvs, keysAndValues...)
	return j.logger.Log(level, msg, kvs...)
}

// SetFinalData stages fields to be merged into the terminal success record.
// It does not emit anything itself.
func (j *Job) SetFinalData(data types.Fields) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.ended {
		return
	}
	if j.final == nil {
		j.final = make(types.Fields, len(data))
	}
	for key, value := range data {
		j.final[key] = value
	}
}

// End emits the terminal record and renders the job inert. A nil err yields
// "job_completed" with the total duration and any staged final data; a
// non-nil err yields "job_failed" with the error kind and message. End never
// absorbs err; callers re-propagate it themselves, typically by deferring
// End with the function's named error. Calling End again is a no-op.
func (j *Job) End(err error) error {
	j.mu.Lock()
	if j.ended {
		j.mu.Unlock()
		return nil
	}
	j.ended = true
	durationMS := j.elapsedMS()
	final := j.final
	j.mu.Unlock()

	if err != nil {
		kvs := j.baseKeyValues("job_failed", "failed")
		kvs = append(kvs,
			"duration_ms", durationMS,
			"error_type", fmt.Sprintf("%T", err),
		)
		return j.logger.Log(types.ErrorLevel, err.Error(), kvs...)
	}

	kvs := j.baseKeyValues("job_completed", "success")
	for key, value := range final {
		kvs = append(kvs, key, value)
	}
	kvs = append(kvs, "duration_ms", durationMS)
	return j.logger.Log(types.InfoLevel, "Job completed", kvs...)
}

// Run drives the job scope around fn: fn's error (or panic) produces the
// failure record, a normal return the success record, and either way the
// outcome propagates to the caller unchanged.
func (j *Job) Run(fn func(*Job) error) error {
	defer func() {
		if r := recover(); r != nil {
			_ = j.End(fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	err := fn(j)
	_ = j.End(err)
	return err
}

// baseKeyValues assembles the correlation fields every record of this job
// carries. Static fields come first so explicit pairs can override them.
func (j *Job) baseKeyValues(event string, status string) []interface{} {
	kvs := make([]interface{}, 0, len(j.static)*2+8)
	for key, value := range j.static {
		kvs = append(kvs, key, value)
	}
	kvs = append(kvs,
		"event", event,
		"status", status,
		"job_id", j.jobID,
		"trace_id", j.traceID,
	)
	return kvs
}

func (j *Job) elapsedMS() float64 {
	return float64(time.Since(j.start)) / float64(time.Millisecond)
}
