package builder

import "github.com/joeydtaylor/structura/pkg/internal/joblog"

// Job is a correlation handle for one unit of work.
type Job = joblog.Job

// JobOption configures a Job at creation time.
type JobOption = joblog.Option

// NewJobLogger opens a job scope on l, emitting the started record under
// event. Close it with Job.End (typically deferred) or drive it with
// Job.Run.
func NewJobLogger(l Logger, event string, options ...JobOption) *Job {
	return joblog.Begin(l, event, options...)
}

// JobWithTraceID reuses an existing correlation identifier.
func JobWithTraceID(traceID string) JobOption {
	return joblog.WithTraceID(traceID)
}

// JobWithJobID overrides the generated job identifier.
func JobWithJobID(jobID string) JobOption {
	return joblog.WithJobID(jobID)
}

// JobWithFields attaches static fields to every record the job emits.
func JobWithFields(keysAndValues ...interface{}) JobOption {
	return joblog.WithFields(keysAndValues...)
}
