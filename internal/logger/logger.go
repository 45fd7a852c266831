package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging
type Logger struct {
	*logrus.Entry
}

// New creates a logger writing to out. Unknown levels fall back to info,
// unknown formats to text.
func New(out io.Writer, level, format string) *Logger {
	base := logrus.New()
	base.SetOutput(out)

	switch format {
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	switch level {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "info":
		base.SetLevel(logrus.InfoLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Entry: logrus.NewEntry(base)}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, "error", "text")
}

// WithComponent tags every entry with the component that wrote it
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}
