package types

import (
	"strings"
	"time"
)

// LogLevel represents the severity of a log record. Levels are ordered;
// a logger configured at a given level discards records below it.
type LogLevel int

const (
	DebugLevel    LogLevel = iota // DebugLevel indicates debug messages.
	InfoLevel                     // InfoLevel indicates informational messages.
	WarnLevel                     // WarnLevel indicates warning messages.
	ErrorLevel                    // ErrorLevel indicates error messages.
	CriticalLevel                 // CriticalLevel indicates critical failures.
)

// String returns the wire representation of the level.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// ParseLevel converts a level string to a LogLevel. Matching is
// case-insensitive; unrecognized strings default to InfoLevel.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "CRITICAL":
		return CriticalLevel
	default:
		return InfoLevel
	}
}

// Logger is the producer surface of the engine. Every emit method builds a
// record and hands it to the event queue; none of them performs serialization
// or I/O. Emit methods report lifecycle violations (ErrNotConfigured,
// ErrLoggerShutdown) and backpressure timeouts (ErrQueueFull) to the caller.
type Logger interface {
	Log(level LogLevel, msg string, keysAndValues ...interface{}) error
	Debug(msg string, keysAndValues ...interface{}) error
	Info(msg string, keysAndValues ...interface{}) error
	Warn(msg string, keysAndValues ...interface{}) error
	Error(msg string, keysAndValues ...interface{}) error
	Critical(msg string, keysAndValues ...interface{}) error
	Level() LogLevel
	StartHeartbeat(interval time.Duration)
	StopHeartbeat()
}
