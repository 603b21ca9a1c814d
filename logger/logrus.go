package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger wraps a logrus logger to implement the Logger interface.
type LogrusLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// Option configures a LogrusLogger.
type Option func(*logrus.Logger)

// WithFormat selects "json" (default) or "text" output.
func WithFormat(format string) Option {
	return func(l *logrus.Logger) {
		if strings.EqualFold(format, "text") {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			return
		}
		l.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithOutput redirects log output, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// NewLogrusLogger creates a new LogrusLogger with JSON formatter.
func NewLogrusLogger(level string, opts ...Option) *LogrusLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	for _, opt := range opts {
		opt(logger)
	}

	return &LogrusLogger{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

func (l *LogrusLogger) at(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	entry := l.entry
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	if all := merge(ctx, fields); len(all) > 0 {
		entry = entry.WithFields(all)
	}
	return entry
}

// Debug logs a debug-level message.
func (l *LogrusLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.at(ctx, fields).Debug(msg)
}

// Info logs an info-level message.
func (l *LogrusLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.at(ctx, fields).Info(msg)
}

// Warn logs a warning-level message.
func (l *LogrusLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.at(ctx, fields).Warn(msg)
}

// Error logs an error-level message.
func (l *LogrusLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.at(ctx, fields).Error(msg)
}

// WithField returns a new logger with the given field added.
func (l *LogrusLogger) WithField(key string, value interface{}) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithField(key, value),
	}
}

// WithFields returns a new logger with the given fields added.
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithFields(fields),
	}
}
