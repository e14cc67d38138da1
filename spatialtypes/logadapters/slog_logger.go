// Package logadapters provides ready-made implementations of the
// postgresengine.Logger interface for users who want plug-and-play logging
// without implementing the interface themselves.
package logadapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// SlogLogger implements postgresengine.Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewOtelSlogLogger creates a logger backed by the OpenTelemetry slog
// bridge, emitting records through the global OpenTelemetry LoggerProvider.
func NewOtelSlogLogger(name string) *SlogLogger {
	return &SlogLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogLogger creates a logger using the provided slog.Handler as-is,
// without OpenTelemetry integration.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
