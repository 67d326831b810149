// Package database provides the gorm connection and the table-backed
// key-value storage
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"lighthouse.app/internal/config"
	"lighthouse.app/pkg/errors"
)

// Open initializes the database connection for the configured driver
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
				return nil, errors.NewStorageError("create sqlite directory", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported database driver: %s", cfg.Driver), nil)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, errors.NewStorageError("connect to database", err)
	}
	return db, nil
}

// RunMigrations executes database schema migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&StorageEntryModel{}); err != nil {
		return errors.NewStorageError("migrate database", err)
	}
	return nil
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
