package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// Store owns the session for the lifetime of the process. Reads are
// synchronous, every mutation is persisted and then announced to observers.
type Store struct {
	storage ports.KeyValueStorage
	logger  ports.Logger
	metrics ports.MetricsRecorder

	mu      sync.RWMutex
	current Session

	// notifyMu keeps observer callbacks in mutation order
	notifyMu  sync.Mutex
	observers map[int]func(Session)
	nextID    int
}

type StoreDependencies struct {
	Storage ports.KeyValueStorage
	Logger  ports.Logger
	Metrics ports.MetricsRecorder
}

func NewStore(deps StoreDependencies) (*Store, error) {
	if deps.Storage == nil {
		return nil, errors.NewValidationError("storage is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics recorder is required")
	}

	return &Store{
		storage:   deps.Storage,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		current:   Default(),
		observers: make(map[int]func(Session)),
	}, nil
}

// Load reads the persisted record once at startup. A missing or unreadable
// record leaves the default session in place.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if errors.IsNotFoundError(err) {
			s.logger.Debug("No persisted session, starting unauthenticated")
			return nil
		}
		s.logger.Error("Failed to read persisted session",
			ports.F("storage", s.storage.Name()),
			ports.F("error", err))
		return errors.NewStorageError("read session", err)
	}

	loaded, err := decode(data)
	if err != nil {
		s.logger.Warn("Discarding undecodable session record", ports.F("error", err))
		loaded = Default()
	}
	if !loaded.IsConsistent() {
		s.logger.Warn("Discarding authenticated session without token")
		loaded = Default()
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	s.metrics.RecordSessionChange(ActionLoad)
	s.logger.Debug("Session loaded",
		ports.F("storage", s.storage.Name()),
		ports.F("authenticated", loaded.IsAuthenticated))
	s.notify(loaded)
	return nil
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Subscribe registers an observer called after every mutation and returns
// a function that removes it. Observers run synchronously and must not call
// back into the store's mutating methods or Subscribe.
func (s *Store) Subscribe(observer func(Session)) func() {
	s.notifyMu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.notifyMu.Unlock()

	return func() {
		s.notifyMu.Lock()
		delete(s.observers, id)
		s.notifyMu.Unlock()
	}
}

// SetUser marks the user as logged in with the given token
func (s *Store) SetUser(ctx context.Context, username, jwt string) error {
	if jwt == "" {
		return errors.NewValidationError("jwt is required to authenticate")
	}
	return s.mutate(ctx, ActionSetUser, func(cur Session) Session {
		return Session{
			Username:        stringPtr(username),
			JWT:             stringPtr(jwt),
			IsAuthenticated: true,
		}
	})
}

// ClearUser resets the session to its unauthenticated default
func (s *Store) ClearUser(ctx context.Context) error {
	return s.mutate(ctx, ActionClearUser, func(Session) Session {
		return Default()
	})
}

func (s *Store) UpdateUsername(ctx context.Context, username string) error {
	return s.mutate(ctx, ActionUpdateUsername, func(cur Session) Session {
		cur.Username = stringPtr(username)
		return cur
	})
}

// UpdateJWT replaces the token. An authenticated session cannot drop its token.
func (s *Store) UpdateJWT(ctx context.Context, jwt string) error {
	if jwt == "" && s.Snapshot().IsAuthenticated {
		return errors.NewValidationError("jwt cannot be emptied while authenticated")
	}
	return s.mutate(ctx, ActionUpdateJWT, func(cur Session) Session {
		cur.JWT = stringPtr(jwt)
		return cur
	})
}

func (s *Store) mutate(ctx context.Context, action string, apply func(Session) Session) error {
	// notifyMu is held across the whole mutation so observers see changes in order
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := apply(s.current.clone())
	s.current = next
	s.mu.Unlock()

	s.metrics.RecordSessionChange(action)
	s.logger.Debug("Session updated",
		ports.F("action", action),
		ports.F("authenticated", next.IsAuthenticated))

	var persistErr error
	data, err := encode(next)
	if err == nil {
		err = s.storage.Set(ctx, StorageKey, data)
	}
	if err != nil {
		s.logger.Error("Failed to persist session",
			ports.F("action", action),
			ports.F("storage", s.storage.Name()),
			ports.F("error", err))
		persistErr = errors.NewStorageError(fmt.Sprintf("persist session after %s", action), err)
	}

	s.notifyLocked(next)
	return persistErr
}

func (s *Store) notify(value Session) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.notifyLocked(value)
}

func (s *Store) notifyLocked(value Session) {
	for _, id := range s.sortedObserverIDs() {
		s.observers[id](value.clone())
	}
}

func (s *Store) sortedObserverIDs() []int {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
