package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DispatcherLogger bridges the command dispatcher's keyed logging calls
// onto the session zerolog logger.
type DispatcherLogger struct {
	log zerolog.Logger
}

// NewDispatcherLogger wraps a zerolog.Logger for the dispatcher.
func NewDispatcherLogger(log zerolog.Logger) *DispatcherLogger {
	return &DispatcherLogger{log: log}
}

// Debug logs a debug message with optional key-value pairs.
func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	emit(l.log.Debug(), msg, keysAndValues)
}

// Info logs an info message with optional key-value pairs.
func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	emit(l.log.Info(), msg, keysAndValues)
}

// Error logs an error message with optional key-value pairs.
func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	emit(l.log.Error(), msg, keysAndValues)
}

// emit attaches the key-value pairs as event fields. A key that is not
// a string still lands in the event under a positional name, so no
// dispatcher detail is silently dropped.
func emit(ev *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	ev.Msg(msg)
}
