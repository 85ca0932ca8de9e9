// Package eventqueue provides the thread-safe FIFO hand-off between producer
// call sites and the single drain worker.
//
// The queue is unbounded by default. With a capacity configured, Enqueue
// blocks until space frees up rather than dropping records; an optional
// enqueue timeout converts that wait into types.ErrQueueFull at the call
// site. After CloseAndDrain, enqueues fail with types.ErrLoggerShutdown
// while already-queued records remain available to the drain worker.
package eventqueue

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// compactThreshold bounds how far the ring head drifts before the backing
// slice is compacted in place.
const compactThreshold = 64

type Queue struct {
	mu             sync.Mutex
	notEmpty       *sync.Cond
	notFull        *sync.Cond
	items          []types.Record
	head           int
	capacity       int
	enqueueTimeout time.Duration
	closed         bool
}

// New constructs a queue. Without options it is unbounded and never blocks
// a producer.
func New(options ...types.Option[*Queue]) *Queue {
	q := &Queue{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	for _, option := range options {
		option(q)
	}
	return q
}

// Enqueue appends rec in FIFO position. See the package comment for the
// blocking and failure contract.
func (q *Queue) Enqueue(ctx context.Context, rec types.Record) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return types.ErrLoggerShutdown
	}

	if q.capacity > 0 && q.size() >= q.capacity {
		if err := q.waitForSpace(ctx); err != nil {
			return err
		}
	}

	q.items = append(q.items, rec)
	q.notEmpty.Signal()
	return nil
}

// waitForSpace blocks until the queue has room, the enqueue timeout or ctx
// expires, or the queue closes. Called with q.mu held.
func (q *Queue) waitForSpace(ctx context.Context) error {
	var deadline time.Time
	if q.enqueueTimeout > 0 {
		deadline = time.Now().Add(q.enqueueTimeout)
		timer := time.AfterFunc(q.enqueueTimeout, func() {
			q.mu.Lock()
			q.notFull.Broadcast()
			q.mu.Unlock()
		})
		defer timer.Stop()
	}
	if ctx != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.notFull.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	for q.size() >= q.capacity && !q.closed {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return types.ErrQueueFull
		}
		q.notFull.Wait()
	}
	if q.closed {
		return types.ErrLoggerShutdown
	}
	return nil
}

// DequeueBlocking removes the oldest record, blocking while the queue is
// empty and open. Only the drain worker calls this. ok is false once the
// queue is closed and drained.
func (q *Queue) DequeueBlocking() (types.Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size() == 0 {
		return types.Record{}, false
	}

	rec := q.items[q.head]
	q.items[q.head] = types.Record{}
	q.head++
	if q.head >= compactThreshold && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	q.notFull.Signal()
	return rec, true
}

// CloseAndDrain marks the queue closed for enqueue. Idempotent. Queued
// records stay dequeuable; blocked producers and the drain worker wake up.
func (q *Queue) CloseAndDrain() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len reports the number of queued records.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size()
}

func (q *Queue) size() int {
	return len(q.items) - q.head
}
