package fetch

import (
	"context"
	"sort"
	"sync"
	"time"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// Resource is the asynchronous fetch state machine shared by every data hook:
// Idle -> Loading -> {Loaded | Error}, re-entering Loading whenever the input
// changes. Only the most recent activation may conclude; results of
// superseded requests are dropped.
type Resource[Q comparable, T any] struct {
	name    string
	fetch   Fetcher[Q, T]
	logger  ports.Logger
	metrics ports.MetricsRecorder

	mu         sync.Mutex
	state      State[Q, T]
	generation uint64
	done       chan struct{}

	notifyMu  sync.Mutex
	observers map[int]func(State[Q, T])
	nextID    int
}

type Dependencies[Q comparable, T any] struct {
	Name    string
	Fetch   Fetcher[Q, T]
	Logger  ports.Logger
	Metrics ports.MetricsRecorder
}

func New[Q comparable, T any](deps Dependencies[Q, T]) (*Resource[Q, T], error) {
	if deps.Name == "" {
		return nil, errors.NewValidationError("resource name is required")
	}
	if deps.Fetch == nil {
		return nil, errors.NewValidationError("fetcher is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics recorder is required")
	}

	return &Resource[Q, T]{
		name:      deps.Name,
		fetch:     deps.Fetch,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		observers: make(map[int]func(State[Q, T])),
	}, nil
}

func (r *Resource[Q, T]) Name() string {
	return r.name
}

// Activate points the resource at query. It starts a request when the
// resource is idle or the input changed and reports whether it did.
func (r *Resource[Q, T]) Activate(ctx context.Context, query Q) bool {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	if r.state.Status != StatusIdle && r.state.Query == query {
		r.mu.Unlock()
		return false
	}
	snapshot := r.startLocked(ctx, query)
	r.mu.Unlock()

	r.notifyLocked(snapshot)
	return true
}

// Reload repeats the request for the current input. It does nothing on an
// idle resource.
func (r *Resource[Q, T]) Reload(ctx context.Context) bool {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	if r.state.Status == StatusIdle {
		r.mu.Unlock()
		return false
	}
	snapshot := r.startLocked(ctx, r.state.Query)
	r.mu.Unlock()

	r.notifyLocked(snapshot)
	return true
}

// Snapshot returns the current state
func (r *Resource[Q, T]) Snapshot() State[Q, T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until the resource is no longer loading or ctx is done
func (r *Resource[Q, T]) Wait(ctx context.Context) (State[Q, T], error) {
	for {
		r.mu.Lock()
		if r.state.Status != StatusLoading {
			state := r.state
			r.mu.Unlock()
			return state, nil
		}
		done := r.done
		r.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return r.Snapshot(), ctx.Err()
		}
	}
}

// Subscribe registers an observer called on every state transition, in
// transition order, and returns a function that removes it. Observers run
// synchronously and must not call back into the resource's mutating methods.
func (r *Resource[Q, T]) Subscribe(observer func(State[Q, T])) func() {
	r.notifyMu.Lock()
	id := r.nextID
	r.nextID++
	r.observers[id] = observer
	r.notifyMu.Unlock()

	return func() {
		r.notifyMu.Lock()
		delete(r.observers, id)
		r.notifyMu.Unlock()
	}
}

func (r *Resource[Q, T]) startLocked(ctx context.Context, query Q) State[Q, T] {
	if r.done != nil && r.state.Status == StatusLoading {
		// release waiters of the superseded request; they re-check the new one
		close(r.done)
	}
	r.generation++
	r.done = make(chan struct{})
	r.state = State[Q, T]{
		Status: StatusLoading,
		Data:   r.state.Data,
		Query:  query,
	}

	// the request outlives the caller; it concludes on its own like the UI hooks did
	go r.run(context.WithoutCancel(ctx), r.generation, query)

	return r.state
}

func (r *Resource[Q, T]) run(ctx context.Context, generation uint64, query Q) {
	start := time.Now()
	r.logger.Debug("Fetching", ports.F("resource", r.name))

	data, err := r.fetch(ctx, query)
	duration := time.Since(start)

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	if generation != r.generation {
		r.mu.Unlock()
		r.metrics.RecordFetch(r.name, ports.OutcomeDiscarded, duration)
		r.logger.Debug("Discarding stale response", ports.F("resource", r.name))
		return
	}

	if err != nil {
		r.state.Status = StatusError
		r.state.Error = errorMessage(err)
	} else {
		r.state.Status = StatusLoaded
		r.state.Data = data
		r.state.Error = ""
	}
	snapshot := r.state
	close(r.done)
	r.mu.Unlock()

	if err != nil {
		r.metrics.RecordFetch(r.name, ports.OutcomeFailure, duration)
		r.logger.Error("Fetch failed",
			ports.F("resource", r.name),
			ports.F("error", err),
			ports.F("duration_ms", duration.Milliseconds()))
	} else {
		r.metrics.RecordFetch(r.name, ports.OutcomeSuccess, duration)
	}

	r.notifyLocked(snapshot)
}

func (r *Resource[Q, T]) notifyLocked(state State[Q, T]) {
	ids := make([]int, 0, len(r.observers))
	for id := range r.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		r.observers[id](state)
	}
}

func errorMessage(err error) string {
	msg := errors.Message(err)
	if msg == "" {
		return "request failed"
	}
	return msg
}
