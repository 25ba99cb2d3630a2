package domain

// LogEvent is the read-only view of a log record a filter needs.
// The logging framework owns the record; filters only read the logger name.
type LogEvent interface {
	LoggerName() string
}

// NamedEvent is a LogEvent backed by nothing but a logger name.
type NamedEvent string

// LoggerName returns the name itself.
func (e NamedEvent) LoggerName() string { return string(e) }
