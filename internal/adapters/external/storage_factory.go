package external

import (
	"fmt"

	"lighthouse.app/internal/adapters/database"
	"lighthouse.app/internal/config"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

type StorageFactory struct{}

func NewStorageFactory() *StorageFactory {
	return &StorageFactory{}
}

// CreateStorage builds the configured storage backend. Backends holding a
// connection also implement io.Closer.
func (f *StorageFactory) CreateStorage(cfg *config.StorageConfig) (ports.KeyValueStorage, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("storage config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.StorageTypeFile:
		return NewFileStorage(cfg.Dir)
	case config.StorageTypeMemory:
		return NewMemoryStorage(), nil
	case config.StorageTypeRedis:
		return NewRedisStorage(&cfg.Redis, cfg.KeyPrefix)
	case config.StorageTypeDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		return database.NewStorageRepositoryAdapter(db), nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported storage type: %s", cfg.Type.String()), nil)
	}
}
