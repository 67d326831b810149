package fetch

import (
	"context"
	"fmt"
)

// Status is the lifecycle position of a resource
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText renders the status as its lowercase name in JSON views
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a status back from its lowercase name
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusIdle, StatusLoading, StatusLoaded, StatusError} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown fetch status %q", text)
}

// Fetcher performs one request for the given input
type Fetcher[Q comparable, T any] func(ctx context.Context, query Q) (*T, error)

// State is an immutable snapshot of a resource. Data survives a failed
// reload; Error is only set in StatusError.
type State[Q comparable, T any] struct {
	Status Status
	Data   *T
	Error  string
	Query  Q
}

// Loading reports whether a request is in flight
func (s State[Q, T]) Loading() bool {
	return s.Status == StatusLoading
}
