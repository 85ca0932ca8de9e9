package joblog_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/joblog"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

type entry struct {
	level  types.LogLevel
	msg    string
	fields map[string]interface{}
}

// captureLogger records every emit so tests can assert on the job's output.
type captureLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *captureLogger) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) error {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level: level, msg: msg, fields: fields})
	return nil
}

func (l *captureLogger) Debug(msg string, kvs ...interface{}) error {
	return l.Log(types.DebugLevel, msg, kvs...)
}
func (l *captureLogger) Info(msg string, kvs ...interface{}) error {
	return l.Log(types.InfoLevel, msg, kvs...)
}
func (l *captureLogger) Warn(msg string, kvs ...interface{}) error {
	return l.Log(types.WarnLevel, msg, kvs...)
}
func (l *captureLogger) Error(msg string, kvs ...interface{}) error {
	return l.Log(types.ErrorLevel, msg, kvs...)
}
func (l *captureLogger) Critical(msg string, kvs ...interface{}) error {
	return l.Log(types.CriticalLevel, msg, kvs...)
}
func (l *captureLogger) Level() types.LogLevel        { return types.DebugLevel }
func (l *captureLogger) StartHeartbeat(time.Duration) {}
func (l *captureLogger) StopHeartbeat()               {}

func (l *captureLogger) all() []entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *captureLogger) byEvent(event string) []entry {
	var out []entry
	for _, e := range l.all() {
		if e.fields["event"] == event {
			out = append(out, e)
		}
	}
	return out
}

func TestSuccessfulJobEmitsStartProgressAndCompletion(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync")

	if err := job.Progress("progress", 50, "step", "transform"); err != nil {
		t.Fatalf("Progress: %v", err)
	}
	job.SetFinalData(types.Fields{"records_processed": 1234})
	if err := job.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}

	entries := log.all()
	if len(entries) != 3 {
		t.Fatalf("emitted %d records, want 3", len(entries))
	}

	started := entries[0]
	if started.fields["event"] != "data_sync" || started.fields["status"] != "running" {
		t.Fatalf("started record = %+v", started.fields)
	}
	if started.msg != "Job started" {
		t.Errorf("started message = %q", started.msg)
	}

	progress := entries[1]
	if progress.fields["event"] != "job_progress" {
		t.Fatalf("progress record = %+v", progress.fields)
	}
	if progress.msg != "Job progress: 50%" {
		t.Errorf("progress message = %q", progress.msg)
	}
	if progress.fields["step"] != "transform" {
		t.Errorf("progress step = %v", progress.fields["step"])
	}
	if _, ok := progress.fields["elapsed_ms"].(float64); !ok {
		t.Errorf("progress elapsed_ms = %v", progress.fields["elapsed_ms"])
	}

	completed := entries[2]
	if completed.fields["event"] != "job_completed" || completed.fields["status"] != "success" {
		t.Fatalf("terminal record = %+v", completed.fields)
	}
	if completed.fields["records_processed"] != 1234 {
		t.Errorf("final data missing: %+v", completed.fields)
	}
	if _, ok := completed.fields["duration_ms"].(float64); !ok {
		t.Errorf("duration_ms = %v", completed.fields["duration_ms"])
	}
	if len(log.byEvent("job_failed")) != 0 {
		t.Error("successful job must not emit job_failed")
	}
}

func TestAllRecordsShareCorrelationIDs(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync")
	if err := job.Info("checkpoint", "halfway"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := job.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}

	if job.TraceID() == "" || job.JobID() == "" {
		t.Fatalf("missing identifiers: trace=%q job=%q", job.TraceID(), job.JobID())
	}
	if !strings.HasPrefix(job.JobID(), "job-") {
		t.Errorf("job ID %q lacks the job- prefix", job.JobID())
	}
	if strings.Contains(job.TraceID(), "-") {
		t.Errorf("trace ID %q must be bare hex", job.TraceID())
	}
	for i, e := range log.all() {
		if e.fields["trace_id"] != job.TraceID() || e.fields["job_id"] != job.JobID() {
			t.Errorf("record %d carries wrong IDs: %+v", i, e.fields)
		}
	}
}

func TestFailedJobEmitsFailureRecord(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync")

	cause := errors.New("database connection lost")
	if err := job.End(cause); err != nil {
		t.Fatalf("End: %v", err)
	}

	failed := log.byEvent("job_failed")
	if len(failed) != 1 {
		t.Fatalf("job_failed records = %d, want 1", len(failed))
	}
	e := failed[0]
	if e.level != types.ErrorLevel {
		t.Errorf("failure level = %v, want ERROR", e.level)
	}
	if e.msg != "database connection lost" {
		t.Errorf("failure message = %q", e.msg)
	}
	if e.fields["status"] != "failed" {
		t.Errorf("failure status = %v", e.fields["status"])
	}
	if e.fields["error_type"] != "*errors.errorString" {
		t.Errorf("error_type = %v", e.fields["error_type"])
	}
	if len(log.byEvent("job_completed")) != 0 {
		t.Error("failed job must not emit job_completed")
	}
}

func TestEndedJobIsInert(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync")
	if err := job.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}

	before := len(log.all())
	if err := job.End(errors.New("too late")); err != nil {
		t.Fatalf("second End returned %v, want nil no-op", err)
	}
	if err := job.Progress("progress", 99); !errors.Is(err, joblog.ErrEnded) {
		t.Fatalf("Progress after End = %v, want ErrEnded", err)
	}
	if err := job.Info("late", "ignored"); !errors.Is(err, joblog.ErrEnded) {
		t.Fatalf("Info after End = %v, want ErrEnded", err)
	}
	if got := len(log.all()); got != before {
		t.Fatalf("ended job emitted %d extra records", got-before)
	}
}

func TestCustomIdentifiersRespected(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync",
		joblog.WithTraceID("abc123"),
		joblog.WithJobID("job-custom-1"),
	)
	defer func() { _ = job.End(nil) }()

	if job.TraceID() != "abc123" {
		t.Errorf("TraceID = %q", job.TraceID())
	}
	if job.JobID() != "job-custom-1" {
		t.Errorf("JobID = %q", job.JobID())
	}
	if got := log.all()[0].fields["job_id"]; got != "job-custom-1" {
		t.Errorf("started record job_id = %v", got)
	}
}

func TestStaticFieldsOnEveryRecord(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync", joblog.WithFields("tenant", "acme"))
	if err := job.Progress("progress", 10); err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if err := job.End(nil); err != nil {
		t.Fatalf("End: %v", err)
	}

	for i, e := range log.all() {
		if e.fields["tenant"] != "acme" {
			t.Errorf("record %d lost the static field: %+v", i, e.fields)
		}
	}
}

func TestRunReturnsCallbackErrorUnchanged(t *testing.T) {
	log := &captureLogger{}
	sentinel := errors.New("boom")

	err := joblog.Begin(log, "data_sync").Run(func(*joblog.Job) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Run = %v, want the callback's error", err)
	}
	if len(log.byEvent("job_failed")) != 1 {
		t.Fatal("Run did not emit the failure record")
	}
}

func TestRunEmitsFailureAndRepanics(t *testing.T) {
	log := &captureLogger{}
	job := joblog.Begin(log, "data_sync")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("panic was swallowed")
		}
		failed := log.byEvent("job_failed")
		if len(failed) != 1 {
			t.Fatalf("job_failed records = %d, want 1", len(failed))
		}
		if !strings.Contains(failed[0].msg, "kaboom") {
			t.Errorf("failure message = %q", failed[0].msg)
		}
	}()

	_ = job.Run(func(*joblog.Job) error {
		panic("kaboom")
	})
}
