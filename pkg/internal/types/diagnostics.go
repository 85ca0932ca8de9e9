package types

// SinkType defines the destination type of a diagnostic sink.
type SinkType string

const (
	FileSink   SinkType = "file"
	StdoutSink SinkType = "stdout"
	StderrSink SinkType = "stderr"
)

// SinkConfig defines the configuration for a diagnostic sink.
type SinkConfig struct {
	Type   SinkType
	Config map[string]interface{}
}

// DiagnosticLogger is the engine's secondary channel. The drain worker
// reports serialization and write incidents here, never on the primary
// stream, so a bad record cannot feed back into the pipeline it broke.
type DiagnosticLogger interface {
	GetLevel() LogLevel
	SetLevel(LogLevel)
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Flush() error
	AddSink(identifier string, config SinkConfig) error
	RemoveSink(identifier string) error
	ListSinks() ([]string, error)
}
