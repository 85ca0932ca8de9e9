package types

import "errors"

// Lifecycle-contract violations surface synchronously to the violating call;
// queue and shutdown timeouts surface to whichever call exceeded its bound.
var (
	// ErrNotConfigured is returned when an operation requires an ACTIVE
	// engine and the engine is not active.
	ErrNotConfigured = errors.New("structura: not configured")

	// ErrAlreadyConfigured is returned by Configure while the engine is
	// already active.
	ErrAlreadyConfigured = errors.New("structura: already configured")

	// ErrQueueFull is returned when a bounded queue stayed full past the
	// configured enqueue timeout.
	ErrQueueFull = errors.New("structura: event queue full")

	// ErrLoggerShutdown is returned when an enqueue is attempted after the
	// drain signal.
	ErrLoggerShutdown = errors.New("structura: logger shut down")

	// ErrShutdownTimeout is reported when the drain worker did not exit
	// within the shutdown timeout. The engine still ends up STOPPED; at most
	// the records still in flight are abandoned.
	ErrShutdownTimeout = errors.New("structura: shutdown timed out before queue drained")
)
