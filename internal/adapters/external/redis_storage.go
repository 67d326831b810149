package external

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"lighthouse.app/internal/config"
	"lighthouse.app/pkg/errors"
)

// RedisStorage implements KeyValueStorage port using Redis. Keys are stored
// under a prefix without expiry.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage connects to Redis and verifies the connection
func NewRedisStorage(cfg *config.RedisConfig, prefix string) (*RedisStorage, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStorageError("failed to connect to Redis", err)
	}

	return NewRedisStorageFromClient(client, prefix), nil
}

// NewRedisStorageFromClient wraps an existing client
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("storage key cannot be empty")
	}

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NewNotFoundError("key not found")
		}
		return nil, errors.NewStorageError("redis get operation failed", err)
	}
	return val, nil
}

func (r *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("storage value cannot be nil")
	}

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errors.NewStorageError("redis set operation failed", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return errors.NewStorageError("redis delete operation failed", err)
	}
	return nil
}

func (r *RedisStorage) Name() string {
	return "redis"
}

// Ping checks if Redis connection is alive
func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewStorageError("Redis ping failed", err)
	}
	return nil
}

// Close closes the Redis client connection
func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewStorageError("failed to close Redis connection", err)
	}
	return nil
}
