package ports

import "context"

// KeyValueStorage is the durable local storage the client persists its state to.
// Get returns a NotFoundError when the key has never been written.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Name() string
}
