package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resume-insight/config"
	"resume-insight/logger"
	"resume-insight/models"
)

// Open connects to the sqlite database at cfg.Path. The pool is limited to a
// single connection so inserts are serialised and ":memory:" databases stay
// shared across calls.
func Open(cfg config.Database, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if log != nil {
		log.Info("database connected", "path", cfg.Path)
	}
	return db, nil
}

// Migrate creates or updates the schema. Safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Insight{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func logLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
