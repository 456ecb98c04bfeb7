package testutil

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"antrian/internal/db"
	"antrian/internal/logger"
)

// OpenInMemoryDB opens a migrated in-memory SQLite database private to the test.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	gormDB, err := db.NewSQLite("file:"+name+"?mode=memory&cache=shared", logger.Discard())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gormDB
}
