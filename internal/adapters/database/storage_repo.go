package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"lighthouse.app/pkg/errors"
)

// StorageEntryModel represents one key of the client storage table
type StorageEntryModel struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StorageEntryModel) TableName() string {
	return "client_storage"
}

// StorageRepositoryAdapter implements the KeyValueStorage port using GORM
type StorageRepositoryAdapter struct {
	db *gorm.DB
}

// NewStorageRepositoryAdapter creates a new storage repository adapter
func NewStorageRepositoryAdapter(db *gorm.DB) *StorageRepositoryAdapter {
	return &StorageRepositoryAdapter{db: db}
}

// Get retrieves the value stored under key
func (r *StorageRepositoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("storage key cannot be empty")
	}

	var model StorageEntryModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("key not found")
		}
		return nil, errors.NewStorageError("failed to read storage entry", result.Error)
	}

	return model.Value, nil
}

// Set inserts or replaces the value stored under key
func (r *StorageRepositoryAdapter) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("storage value cannot be nil")
	}

	model := &StorageEntryModel{Key: key, Value: value}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return errors.NewStorageError("failed to write storage entry", result.Error)
	}

	return nil
}

// Delete removes key; deleting a missing key is not an error
func (r *StorageRepositoryAdapter) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}

	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&StorageEntryModel{})
	if result.Error != nil {
		return errors.NewStorageError("failed to delete storage entry", result.Error)
	}

	return nil
}

func (r *StorageRepositoryAdapter) Name() string {
	return "database"
}

// Ping checks the underlying connection
func (r *StorageRepositoryAdapter) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewStorageError("database handle unavailable", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewStorageError("database ping failed", err)
	}
	return nil
}

// Close releases the underlying connection
func (r *StorageRepositoryAdapter) Close() error {
	return Close(r.db)
}
