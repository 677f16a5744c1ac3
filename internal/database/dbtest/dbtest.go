// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory SQLite database that is closed when the
// test ends. The pool is pinned to one connection so every query sees the
// same in-memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
