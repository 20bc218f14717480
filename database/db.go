package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"media-journal/models"
)

// DB wraps the local relational engine.
type DB struct {
	*gorm.DB
}

// tables lists every model the local engine owns, in creation order.
func tables() []any {
	return []any{
		&models.Media{},
		&models.Note{},
		&models.DeepDiveSession{},
		&models.RelatedWork{},
		&models.Genre{},
		&models.MediaGenre{},
	}
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if err := gdb.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if err := gdb.Exec("PRAGMA foreign_keys=ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{gdb}, nil
}

func (db *DB) Migrate() error {
	if err := db.AutoMigrate(tables()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Recreate drops and rebuilds the schema. Used by the stale-enum recovery
// path when persisted values no longer deserialize against the current
// definitions.
func (db *DB) Recreate() error {
	if err := db.Migrator().DropTable(tables()...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return db.Migrate()
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
