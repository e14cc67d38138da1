package postgresengine

import (
	"github.com/gijs/postgis-types-go/spatialtypes"
)

// Logger interface for SQL query logging, operational messages, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring SchemaManager.
type Option func(*SchemaManager) error

// WithSchemaName sets the database schema the SchemaManager operates in.
// The default is "public".
func WithSchemaName(schemaName string) Option {
	return func(sm *SchemaManager) error {
		if schemaName == "" {
			return spatialtypes.ErrEmptySchemaName
		}

		sm.schemaName = schemaName

		return nil
	}
}

// WithLogger sets the logger for the SchemaManager.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Column counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(sm *SchemaManager) error {
		sm.logger = logger
		return nil
	}
}

// WithRegistry sets the type registry consulted during schema introspection.
// Without this option a fresh registry with the three standard spatial types
// is used.
func WithRegistry(registry *spatialtypes.Registry) Option {
	return func(sm *SchemaManager) error {
		if registry == nil {
			return spatialtypes.ErrNilRegistry
		}

		sm.registry = registry

		return nil
	}
}
