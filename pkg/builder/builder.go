// Package builder is the public surface of structura. It serves a single
// process-wide engine through Configure/GetLogger/Shutdown, the common case
// of one logger per process writing to stdout, and exposes NewEngine for
// callers and tests that need isolated instances.
package builder

import (
	"time"

	"github.com/joeydtaylor/structura/pkg/internal/lifecycle"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

// Logger is the producer surface returned by GetLogger.
type Logger = types.Logger

// Fields is an open mapping of structured data attached to a record.
type Fields = types.Fields

// LogLevel is the severity of a record.
type LogLevel = types.LogLevel

const (
	DebugLevel    = types.DebugLevel
	InfoLevel     = types.InfoLevel
	WarnLevel     = types.WarnLevel
	ErrorLevel    = types.ErrorLevel
	CriticalLevel = types.CriticalLevel
)

// Sentinel errors surfaced by the public operations. Compare with errors.Is.
var (
	ErrNotConfigured     = types.ErrNotConfigured
	ErrAlreadyConfigured = types.ErrAlreadyConfigured
	ErrQueueFull         = types.ErrQueueFull
	ErrLoggerShutdown    = types.ErrLoggerShutdown
	ErrShutdownTimeout   = types.ErrShutdownTimeout
)

var defaultEngine = lifecycle.NewEngine()

// NewEngine creates an isolated engine, independent of the process default.
func NewEngine() *lifecycle.Engine {
	return lifecycle.NewEngine()
}

// Configure activates the process-wide engine. Fails with
// ErrAlreadyConfigured while it is active.
func Configure(options ...lifecycle.Option) error {
	return defaultEngine.Configure(options...)
}

// GetLogger returns the process-wide producer facade. Fails with
// ErrNotConfigured unless Configure has completed and Shutdown has not.
func GetLogger() (Logger, error) {
	return defaultEngine.GetLogger()
}

// Shutdown drains the process-wide engine and blocks until every accepted
// record has been written, bounded by timeout (zero waits forever).
// Idempotent: calling it while not active reports success.
func Shutdown(timeout time.Duration) error {
	return defaultEngine.Shutdown(timeout)
}
