package logadapters

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger implements postgresengine.Logger on top of rs/zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a logger that forwards to the given zerolog.Logger.
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Debug logs a debug message.
func (l *ZerologLogger) Debug(msg string, args ...any) {
	withFields(l.logger.Debug(), args).Msg(msg)
}

// Info logs an info message.
func (l *ZerologLogger) Info(msg string, args ...any) {
	withFields(l.logger.Info(), args).Msg(msg)
}

// Warn logs a warning message.
func (l *ZerologLogger) Warn(msg string, args ...any) {
	withFields(l.logger.Warn(), args).Msg(msg)
}

// Error logs an error message.
func (l *ZerologLogger) Error(msg string, args ...any) {
	withFields(l.logger.Error(), args).Msg(msg)
}

// withFields maps alternating key/value args, as used by the Logger
// interface, onto zerolog event fields. A trailing key without a value is
// logged under the "!BADKEY" field, matching slog's convention.
func withFields(event *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			event = event.Interface("!BADKEY", args[i])
			break
		}

		key, isString := args[i].(string)
		if !isString {
			key = fmt.Sprint(args[i])
		}

		event = event.Interface(key, args[i+1])
	}

	return event
}
