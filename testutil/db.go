package testutil

import (
	"testing"

	"gorm.io/gorm"

	"resume-insight/config"
	"resume-insight/database"
)

// DB opens a migrated in-memory database closed at test cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.Open(config.Database{Path: ":memory:", LogLevel: "silent"}, nil)
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Store returns an InsightStore over a fresh in-memory database.
func Store(tb testing.TB) *database.InsightStore {
	tb.Helper()
	return database.NewInsightStore(DB(tb))
}
