package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// KeyValueStorage is a mock of ports.KeyValueStorage
type KeyValueStorage struct {
	mock.Mock
}

// NewKeyValueStorage creates a mock and registers expectation checks on cleanup
func NewKeyValueStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *KeyValueStorage {
	m := &KeyValueStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *KeyValueStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, args.Error(1)
}

func (m *KeyValueStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KeyValueStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *KeyValueStorage) Name() string {
	args := m.Called()
	return args.String(0)
}
