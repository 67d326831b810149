package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// FileLoggerAdapter appends one JSON object per entry to a log file
type FileLoggerAdapter struct {
	filePath string
	minLevel int
	mutex    sync.Mutex
	file     *os.File
}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3}

// NewFileLoggerAdapter opens logPath for appending, creating its directory.
// Entries below level (debug, info, warn, error) are dropped.
func NewFileLoggerAdapter(logPath, level string) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, errors.NewConfigurationError("log file path cannot be empty", nil)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, errors.NewConfigurationError("failed to create log directory", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to open log file", err)
	}

	rank, ok := levelRank[strings.ToUpper(strings.TrimSpace(level))]
	if !ok {
		rank = levelRank["INFO"]
	}

	return &FileLoggerAdapter{
		filePath: logPath,
		minLevel: rank,
		file:     file,
	}, nil
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry("DEBUG", msg, fields...)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry("INFO", msg, fields...)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry("WARN", msg, fields...)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry("ERROR", msg, fields...)
}

// Path returns the file entries are appended to
func (f *FileLoggerAdapter) Path() string {
	return f.filePath
}

// Close flushes and closes the log file; later entries are dropped
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileLoggerAdapter) writeLogEntry(level, msg string, fields ...ports.Field) {
	if levelRank[level] < f.minLevel {
		return
	}

	entry := make(map[string]interface{}, len(fields)+3)
	for _, field := range fields {
		entry[field.Key] = loggable(field.Value)
	}
	entry["timestamp"] = time.Now().Format(time.RFC3339)
	entry["level"] = level
	entry["message"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":"ERROR","message":"failed to marshal log entry: %v"}`, err))
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return
	}
	if _, err := f.file.Write(append(line, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}

// loggable turns errors into their text; json would render them as {}
func loggable(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}
