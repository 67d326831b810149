package mocks

import (
	"sync"

	"lighthouse.app/internal/ports"
)

// LogEntry is one captured log call
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// Logger captures log calls so tests can assert on them
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogger creates an empty capturing logger
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...ports.Field) { l.add("DEBUG", msg, fields) }
func (l *Logger) Info(msg string, fields ...ports.Field)  { l.add("INFO", msg, fields) }
func (l *Logger) Warn(msg string, fields ...ports.Field)  { l.add("WARN", msg, fields) }
func (l *Logger) Error(msg string, fields ...ports.Field) { l.add("ERROR", msg, fields) }

// Entries returns a copy of the captured entries
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// EntriesAt returns captured entries of one level
func (l *Logger) EntriesAt(level string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *Logger) add(level, msg string, fields []ports.Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{}, len(fields))}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}
