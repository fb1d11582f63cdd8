package logger

import "context"

// Entry is a log entry with metric fields (duration_ms, size, status...).
//
//	logger.With(logger.Fields{logger.FieldDurationMs: 12}).Info(ctx, "done")
type Entry struct {
	logger *Logger
	fields Fields
}

// With creates a new Entry with the given metric fields.
func With(fields Fields) *Entry {
	return &Entry{logger: GetDefault(), fields: fields}
}

// With adds more fields to an existing Entry.
func (e *Entry) With(fields Fields) *Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Entry{logger: e.logger, fields: merged}
}

// WithDuration adds a duration_ms field to the Entry.
func (e *Entry) WithDuration(ms int64) *Entry {
	return e.With(Fields{FieldDurationMs: ms})
}

// WithStatus adds a status field to the Entry.
func (e *Entry) WithStatus(status interface{}) *Entry {
	return e.With(Fields{FieldStatus: status})
}

func (e *Entry) target(ctx context.Context) *Logger {
	if ctx != nil {
		return FromContext(ctx)
	}
	return e.logger
}

// Debug logs at Debug level with metric fields.
func (e *Entry) Debug(ctx context.Context, format string, args ...interface{}) {
	e.target(ctx).WithFields(e.fields).Debugf(format, args...)
}

// Info logs at Info level with metric fields.
func (e *Entry) Info(ctx context.Context, format string, args ...interface{}) {
	e.target(ctx).WithFields(e.fields).Infof(format, args...)
}

// Warn logs at Warn level with metric fields.
func (e *Entry) Warn(ctx context.Context, format string, args ...interface{}) {
	e.target(ctx).WithFields(e.fields).Warnf(format, args...)
}

// Error logs at Error level with metric fields.
func (e *Entry) Error(ctx context.Context, format string, args ...interface{}) {
	e.target(ctx).WithFields(e.fields).Errorf(format, args...)
}
