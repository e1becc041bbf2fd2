package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across classgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation units
	FieldModule = "module"
	FieldClass  = "class"
	FieldTarget = "target"

	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Files and paths
	FieldPath = "path"
	FieldFile = "file"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and status
	FieldCount  = "count"
	FieldStatus = "status"
)

type contextKey string

const (
	moduleKey    contextKey = "logger_module"
	componentKey contextKey = "logger_component"
)

// WithModule adds the module being generated to the context for logging
func WithModule(ctx context.Context, module string) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if module, ok := ctx.Value(moduleKey).(string); ok && module != "" {
		fields = append(fields, FieldModule, module)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger carrying the fields stored in ctx.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Runner struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewRunner() *Runner {
//	    return &Runner{
//	        logger: logger.ComponentLogger("generate"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
