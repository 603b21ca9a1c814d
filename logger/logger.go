package logger

import "context"

// Logger defines the interface for structured logging with context support.
// Fields attached to the context with ContextWithFields are merged into every
// entry logged with that context.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a new logger with the given field added to all subsequent log entries
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with the given fields added to all subsequent log entries
	WithFields(fields map[string]interface{}) Logger
}

type ctxFieldsKey struct{}

// ContextWithFields returns a context carrying fields in addition to any
// fields already attached to ctx.
func ContextWithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	merged := make(map[string]interface{})
	for k, v := range FieldsFromContext(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

// FieldsFromContext returns the fields attached to ctx, or nil.
func FieldsFromContext(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxFieldsKey{}).(map[string]interface{})
	return fields
}

// merge combines context fields with call fields, call fields winning.
func merge(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	ctxFields := FieldsFromContext(ctx)
	if len(ctxFields) == 0 {
		return fields
	}
	all := make(map[string]interface{}, len(ctxFields)+len(fields))
	for k, v := range ctxFields {
		all[k] = v
	}
	for k, v := range fields {
		all[k] = v
	}
	return all
}
