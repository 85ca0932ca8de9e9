package joblog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Option configures a Job at Begin time.
type Option func(*Job)

// WithTraceID reuses an existing correlation identifier instead of
// generating one, propagating a trace across process boundaries.
func WithTraceID(traceID string) Option {
	return func(j *Job) {
		if traceID != "" {
			j.traceID = traceID
		}
	}
}

// WithJobID overrides the generated job identifier.
func WithJobID(jobID string) Option {
	return func(j *Job) {
		if jobID != "" {
			j.jobID = jobID
		}
	}
}

// WithFields attaches static fields to every record the job emits,
// including the terminal one.
func WithFields(keysAndValues ...interface{}) Option {
	return func(j *Job) {
		limit := len(keysAndValues)
		if limit%2 != 0 {
			limit--
		}
		for i := 0; i < limit; i += 2 {
			key, ok := keysAndValues[i].(string)
			if !ok {
				continue
			}
			if j.static == nil {
				j.static = map[string]interface{}{}
			}
			j.static[key] = keysAndValues[i+1]
		}
	}
}

func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newJobID() string {
	return fmt.Sprintf("job-%s-%s",
		time.Now().UTC().Format(time.RFC3339Nano),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:6],
	)
}
