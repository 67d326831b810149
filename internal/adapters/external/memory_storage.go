package external

import (
	"context"
	"sync"

	"lighthouse.app/pkg/errors"
)

// MemoryStorage keeps values in process memory; nothing survives a restart
type MemoryStorage struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string][]byte),
	}
}

func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("storage key cannot be empty")
	}

	m.mutex.RLock()
	value, exists := m.data[key]
	m.mutex.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("key not found")
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("storage value cannot be nil")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStorage) Name() string {
	return "memory"
}
