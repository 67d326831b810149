package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"lighthouse.app/internal/config"
	"lighthouse.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestStorageRepositoryAdapter_GetMissingKey(t *testing.T) {
	repo := NewStorageRepositoryAdapter(setupTestDB(t))

	_, err := repo.Get(context.Background(), "user-storage")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStorageRepositoryAdapter_SetThenGet(t *testing.T) {
	repo := NewStorageRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "user-storage", []byte(`{"username":"ada"}`)))
	value, err := repo.Get(ctx, "user-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"username":"ada"}`, string(value))

	require.NoError(t, repo.Set(ctx, "user-storage", []byte(`{"username":null}`)))
	value, err = repo.Get(ctx, "user-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"username":null}`, string(value))

	var count int64
	require.NoError(t, repo.db.Model(&StorageEntryModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStorageRepositoryAdapter_Delete(t *testing.T) {
	repo := NewStorageRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Get(ctx, "k")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStorageRepositoryAdapter_RejectsInvalidInput(t *testing.T) {
	repo := NewStorageRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(repo.Set(ctx, "", []byte("v"))))
	assert.True(t, errors.IsValidationError(repo.Set(ctx, "k", nil)))
	assert.True(t, errors.IsValidationError(repo.Delete(ctx, "")))
}

func TestStorageRepositoryAdapter_NameAndPing(t *testing.T) {
	repo := NewStorageRepositoryAdapter(setupTestDB(t))
	assert.Equal(t, "database", repo.Name())
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestOpen(t *testing.T) {
	t.Run("SQLiteFile", func(t *testing.T) {
		path := t.TempDir() + "/nested/storage.db"
		db, err := Open(config.DatabaseConfig{Driver: "sqlite", SQLitePath: path})
		require.NoError(t, err)
		defer Close(db)
		require.NoError(t, RunMigrations(db))
		assert.FileExists(t, path)
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		_, err := Open(config.DatabaseConfig{Driver: "mysql"})
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
	})
}
