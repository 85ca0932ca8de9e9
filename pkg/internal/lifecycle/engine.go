// Package lifecycle owns the engine state machine. An Engine ties together
// the event queue, the drain worker and the logger facade, and enforces the
// two-phase contract: Configure before any emission, Shutdown drains every
// accepted record before returning.
//
// Engines are ordinary values so tests construct isolated instances; the
// builder package serves one process-wide default on top.
package lifecycle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/drain"
	"github.com/joeydtaylor/structura/pkg/internal/eventqueue"
	"github.com/joeydtaylor/structura/pkg/internal/logger"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

type Engine struct {
	mu     sync.Mutex
	state  atomic.Int32
	cfg    Config
	queue  *eventqueue.Queue
	worker *drain.Worker
	logger *logger.Logger
	sink   flushCloser
}

type flushCloser interface {
	Flush() error
	Close() error
}

// NewEngine returns an unconfigured engine.
func NewEngine() *Engine {
	e := &Engine{}
	e.state.Store(int32(StateUnconfigured))
	return e
}

// State reports the engine's current lifecycle phase.
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) isActive() bool {
	return State(e.state.Load()) == StateActive
}

// Configure builds the queue and logger facade, starts the drain worker and
// transitions to ACTIVE. Valid from UNCONFIGURED or STOPPED; while ACTIVE it
// fails with types.ErrAlreadyConfigured.
func (e *Engine) Configure(options ...Option) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch State(e.state.Load()) {
	case StateUnconfigured, StateStopped:
	default:
		return types.ErrAlreadyConfigured
	}

	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	cfg.resolve()

	sink, err := cfg.newSink()
	if err != nil {
		return err
	}

	queue := eventqueue.New(
		eventqueue.WithCapacity(cfg.QueueCapacity),
		eventqueue.WithEnqueueTimeout(cfg.EnqueueTimeout),
	)
	worker := drain.NewWorker(queue, sink,
		drain.WithDiagnostics(cfg.Diagnostics),
		drain.WithFlusher(sink.Flush),
	)

	e.cfg = cfg
	e.queue = queue
	e.worker = worker
	e.sink = sink
	e.logger = logger.New(cfg.ServiceName, cfg.WorkerID, cfg.Level, queue, e.isActive)

	worker.Start()
	e.state.Store(int32(StateActive))

	cfg.Diagnostics.Info("Engine configured",
		"event", "Configure",
		"result", "SUCCESS",
		"service_name", cfg.ServiceName,
		"worker_id", cfg.WorkerID,
		"log_level", cfg.Level.String(),
		"queue_capacity", cfg.QueueCapacity,
		"compression", string(cfg.Compression),
	)
	return nil
}

// GetLogger returns the producer facade. Valid only while ACTIVE.
func (e *Engine) GetLogger() (types.Logger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if State(e.state.Load()) != StateActive {
		return nil, types.ErrNotConfigured
	}
	return e.logger, nil
}

// Shutdown stops new enqueues, waits for the drain worker to write every
// queued record, and transitions to STOPPED. If the worker does not exit
// within timeout, the engine still ends up STOPPED and the abandonment is
// reported as types.ErrShutdownTimeout. A zero timeout waits forever.
// Calling Shutdown while not ACTIVE is a successful no-op.
func (e *Engine) Shutdown(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if State(e.state.Load()) != StateActive {
		return nil
	}
	e.state.Store(int32(StateShuttingDown))

	// Close the queue before joining the heartbeat: the close wakes a
	// heartbeat goroutine blocked on a full queue, and its emits are
	// already gated by the state change above.
	e.queue.CloseAndDrain()
	e.logger.StopHeartbeat()

	var timedOut bool
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-e.worker.Done():
		case <-timer.C:
			timedOut = true
		}
	} else {
		<-e.worker.Done()
	}

	e.state.Store(int32(StateStopped))

	if timedOut {
		e.cfg.Diagnostics.Warn("Shutdown timed out before queue drained",
			"event", "Shutdown",
			"result", "TIMEOUT",
			"abandoned_records", e.queue.Len(),
		)
		return types.ErrShutdownTimeout
	}

	// Worker is gone; finalize the sink so compressed streams flush their
	// trailer bytes.
	if err := e.sink.Close(); err != nil {
		e.cfg.Diagnostics.Warn("Output sink close failed",
			"event", "Shutdown",
			"result", "FAILURE",
			"error", err,
		)
	}

	e.cfg.Diagnostics.Info("Engine stopped",
		"event", "Shutdown",
		"result", "SUCCESS",
	)
	return nil
}
