package logger

import (
	"context"
	"sync"
)

// LogEntry represents a single log entry captured by the test logger.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

type sink struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// TestLogger captures log entries in memory. Loggers derived with WithField
// or WithFields record into the same buffer as their parent.
type TestLogger struct {
	sink   *sink
	fields map[string]interface{}
}

// NewTestLogger creates a new test logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{
		sink:   &sink{},
		fields: make(map[string]interface{}),
	}
}

func (l *TestLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, "debug", msg, fields)
}

func (l *TestLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, "info", msg, fields)
}

func (l *TestLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, "warn", msg, fields)
}

func (l *TestLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.log(ctx, "error", msg, fields)
}

// WithField returns a new logger with the given field added.
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a new logger with the given fields added.
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &TestLogger{sink: l.sink, fields: newFields}
}

func (l *TestLogger) log(ctx context.Context, level, msg string, fields map[string]interface{}) {
	allFields := make(map[string]interface{})
	for k, v := range l.fields {
		allFields[k] = v
	}
	for k, v := range merge(ctx, fields) {
		allFields[k] = v
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
	})
}

// Entries returns a copy of all captured log entries.
func (l *TestLogger) Entries() []LogEntry {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()

	entries := make([]LogEntry, len(l.sink.entries))
	copy(entries, l.sink.entries)
	return entries
}

// Find returns the first entry with the given level and message.
func (l *TestLogger) Find(level, msg string) (LogEntry, bool) {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}

// Reset clears all captured log entries.
func (l *TestLogger) Reset() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = nil
}
