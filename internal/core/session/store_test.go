package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lighthouse.app/internal/mocks"
	"lighthouse.app/pkg/errors"
)

// memoryStorage is a minimal ports.KeyValueStorage shared between store instances
type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.NewNotFoundError("key not found")
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryStorage) Name() string { return "memory" }

func newTestStore(t *testing.T, storage *memoryStorage) *Store {
	t.Helper()
	store, err := NewStore(StoreDependencies{
		Storage: storage,
		Logger:  mocks.NewLogger(),
		Metrics: mocks.NewPermissiveMetricsRecorder(t),
	})
	require.NoError(t, err)
	return store
}

func TestNewStore_ValidatesDependencies(t *testing.T) {
	tests := []struct {
		name string
		deps StoreDependencies
		msg  string
	}{
		{"MissingStorage", StoreDependencies{Logger: mocks.NewLogger(), Metrics: mocks.NewMetricsRecorder(t)}, "storage is required"},
		{"MissingLogger", StoreDependencies{Storage: newMemoryStorage(), Metrics: mocks.NewMetricsRecorder(t)}, "logger is required"},
		{"MissingMetrics", StoreDependencies{Storage: newMemoryStorage(), Logger: mocks.NewLogger()}, "metrics recorder is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.deps)
			assert.Nil(t, store)
			assert.True(t, errors.IsValidationError(err))
			assert.Equal(t, tt.msg, errors.Message(err))
		})
	}
}

func TestStore_SetUserThenClearUser(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())
	ctx := context.Background()

	require.NoError(t, store.SetUser(ctx, "alice", "tok123"))
	snap := store.Snapshot()
	assert.Equal(t, "alice", snap.UsernameValue())
	assert.Equal(t, "tok123", snap.JWTValue())
	assert.True(t, snap.IsAuthenticated)

	require.NoError(t, store.ClearUser(ctx))
	snap = store.Snapshot()
	assert.Nil(t, snap.Username)
	assert.Nil(t, snap.JWT)
	assert.False(t, snap.IsAuthenticated)
}

func TestStore_ReloadRestoresSession(t *testing.T) {
	storage := newMemoryStorage()
	ctx := context.Background()

	first := newTestStore(t, storage)
	require.NoError(t, first.SetUser(ctx, "alice", "tok123"))

	restarted := newTestStore(t, storage)
	assert.False(t, restarted.Snapshot().IsAuthenticated)
	require.NoError(t, restarted.Load(ctx))

	assert.Equal(t, first.Snapshot(), restarted.Snapshot())
}

func TestStore_PersistedShapeKeepsNulls(t *testing.T) {
	storage := newMemoryStorage()
	store := newTestStore(t, storage)
	ctx := context.Background()

	require.NoError(t, store.ClearUser(ctx))
	raw, err := storage.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":null,"jwt":null,"isAuthenticated":false}`, string(raw))

	require.NoError(t, store.SetUser(ctx, "bob", "jwt-1"))
	raw, err = storage.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob","jwt":"jwt-1","isAuthenticated":true}`, string(raw))
}

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		expected Session
	}{
		{
			name:     "MissingRecordKeepsDefault",
			expected: Default(),
		},
		{
			name:     "UndecodableRecordFallsBackToDefault",
			stored:   "{not json",
			expected: Default(),
		},
		{
			name:     "AuthenticatedWithoutTokenIsNormalized",
			stored:   `{"username":"carol","jwt":null,"isAuthenticated":true}`,
			expected: Default(),
		},
		{
			name:     "PartialRecordIsKept",
			stored:   `{"username":"dave","jwt":null,"isAuthenticated":false}`,
			expected: Session{Username: stringPtr("dave")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newMemoryStorage()
			ctx := context.Background()
			if tt.stored != "" {
				require.NoError(t, storage.Set(ctx, StorageKey, []byte(tt.stored)))
			}

			store := newTestStore(t, storage)
			require.NoError(t, store.Load(ctx))
			assert.Equal(t, tt.expected, store.Snapshot())
		})
	}
}

func TestStore_Load_StorageFailure(t *testing.T) {
	storage := mocks.NewKeyValueStorage(t)
	storage.On("Get", mock.Anything, StorageKey).Return(nil, fmt.Errorf("connection refused"))
	storage.On("Name").Return("mock")

	store, err := NewStore(StoreDependencies{
		Storage: storage,
		Logger:  mocks.NewLogger(),
		Metrics: mocks.NewMetricsRecorder(t),
	})
	require.NoError(t, err)

	err = store.Load(context.Background())
	assert.True(t, errors.IsStorageError(err))
	assert.Equal(t, Default(), store.Snapshot())
}

func TestStore_SetUser_RejectsEmptyToken(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())

	err := store.SetUser(context.Background(), "alice", "")
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, store.Snapshot().IsAuthenticated)
}

func TestStore_PartialUpdatesKeepAuthentication(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())
	ctx := context.Background()

	require.NoError(t, store.UpdateUsername(ctx, "erin"))
	require.NoError(t, store.UpdateJWT(ctx, "draft"))
	snap := store.Snapshot()
	assert.Equal(t, "erin", snap.UsernameValue())
	assert.Equal(t, "draft", snap.JWTValue())
	assert.False(t, snap.IsAuthenticated)

	require.NoError(t, store.SetUser(ctx, "erin", "tok"))
	require.NoError(t, store.UpdateUsername(ctx, "erin2"))
	require.NoError(t, store.UpdateJWT(ctx, "tok2"))
	snap = store.Snapshot()
	assert.Equal(t, "erin2", snap.UsernameValue())
	assert.Equal(t, "tok2", snap.JWTValue())
	assert.True(t, snap.IsAuthenticated)

	assert.True(t, errors.IsValidationError(store.UpdateJWT(ctx, "")))
	assert.Equal(t, "tok2", store.Snapshot().JWTValue())
}

func TestStore_PersistFailureStillUpdatesMemory(t *testing.T) {
	storage := mocks.NewKeyValueStorage(t)
	storage.On("Set", mock.Anything, StorageKey, mock.Anything).Return(fmt.Errorf("disk full"))
	storage.On("Name").Return("mock")

	logger := mocks.NewLogger()
	metrics := mocks.NewMetricsRecorder(t)
	metrics.On("RecordSessionChange", ActionSetUser).Once()

	store, err := NewStore(StoreDependencies{Storage: storage, Logger: logger, Metrics: metrics})
	require.NoError(t, err)

	err = store.SetUser(context.Background(), "alice", "tok123")
	assert.True(t, errors.IsStorageError(err))
	assert.True(t, store.Snapshot().IsAuthenticated)
	assert.Len(t, logger.EntriesAt("ERROR"), 1)
}

func TestStore_SubscribeNotifiesInOrder(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())
	ctx := context.Background()

	var seen []bool
	unsubscribe := store.Subscribe(func(s Session) {
		seen = append(seen, s.IsAuthenticated)
	})

	require.NoError(t, store.SetUser(ctx, "alice", "tok"))
	require.NoError(t, store.UpdateUsername(ctx, "alice2"))
	require.NoError(t, store.ClearUser(ctx))
	assert.Equal(t, []bool{true, true, false}, seen)

	unsubscribe()
	require.NoError(t, store.SetUser(ctx, "alice", "tok"))
	assert.Len(t, seen, 3)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())
	require.NoError(t, store.SetUser(context.Background(), "alice", "tok"))

	snap := store.Snapshot()
	*snap.Username = "mallory"
	assert.Equal(t, "alice", store.Snapshot().UsernameValue())
}

func TestStore_ConcurrentMutations(t *testing.T) {
	store := newTestStore(t, newMemoryStorage())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = store.SetUser(ctx, fmt.Sprintf("user-%d", i), "tok")
			} else {
				_ = store.ClearUser(ctx)
			}
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.True(t, store.Snapshot().IsConsistent())
}
