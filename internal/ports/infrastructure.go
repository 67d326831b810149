package ports

import "time"

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Outcome labels shared by metrics recorders
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

// MetricsRecorder defines the contract for client metrics
type MetricsRecorder interface {
	RecordFetch(dataset, outcome string, duration time.Duration)
	RecordLoginAttempt(stage, outcome string)
	RecordSessionChange(action string)
	RecordGuardRedirect(route string)
}
