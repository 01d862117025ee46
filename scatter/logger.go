package scatter

// Logger receives debug records from the engine. It is injectable so the
// surrounding simulation can route them into its own logging
// infrastructure; nothing the engine does depends on the sink.
type Logger interface {
	Debugf(format string, v ...interface{})
}

// NoOpLogger discards all records. It is the default sink.
type NoOpLogger struct{}

func (NoOpLogger) Debugf(format string, v ...interface{}) {}
