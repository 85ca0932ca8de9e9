package eventqueue

import (
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// WithCapacity bounds the queue at capacity records. Zero or negative means
// unbounded, the default.
func WithCapacity(capacity int) types.Option[*Queue] {
	return func(q *Queue) {
		if capacity < 0 {
			capacity = 0
		}
		q.capacity = capacity
	}
}

// WithEnqueueTimeout bounds how long Enqueue waits for space on a full
// bounded queue before failing with types.ErrQueueFull. Zero, the default,
// waits indefinitely.
func WithEnqueueTimeout(timeout time.Duration) types.Option[*Queue] {
	return func(q *Queue) {
		if timeout < 0 {
			timeout = 0
		}
		q.enqueueTimeout = timeout
	}
}
