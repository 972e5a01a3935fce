package store

import (
	"path/filepath"
	"testing"
)

// setupTestDB creates a temporary database for tests.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
