// Package infrastructure holds the logging, metrics and health adapters.
package infrastructure

import (
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/logger"
)

// SlogLoggerAdapter implements the Logger port on top of pkg/logger
type SlogLoggerAdapter struct {
	logger *logger.Logger
}

// NewSlogLoggerAdapter wraps l; a nil l logs JSON to stdout at info level
func NewSlogLoggerAdapter(l *logger.Logger) *SlogLoggerAdapter {
	if l == nil {
		l = logger.New()
	}
	return &SlogLoggerAdapter{logger: l}
}

func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.logger.Debug(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.logger.Info(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.logger.Warn(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.logger.Error(msg, toArgs(fields)...)
}

func toArgs(fields []ports.Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return args
}

// TeeLogger forwards every entry to all of its loggers
type TeeLogger struct {
	loggers []ports.Logger
}

// NewTeeLogger skips nil loggers
func NewTeeLogger(loggers ...ports.Logger) *TeeLogger {
	t := &TeeLogger{}
	for _, l := range loggers {
		if l != nil {
			t.loggers = append(t.loggers, l)
		}
	}
	return t
}

func (t *TeeLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Debug(msg, fields...)
	}
}

func (t *TeeLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Info(msg, fields...)
	}
}

func (t *TeeLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Warn(msg, fields...)
	}
}

func (t *TeeLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range t.loggers {
		l.Error(msg, fields...)
	}
}
