package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/smartprompts/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that lives as long as the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, ":memory:")
}

// NewFileTestDB is NewTestDB backed by a file in t.TempDir, for tests that
// reopen the same database.
func NewFileTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smartprompts.db")
	return openMigrated(t, path), path
}

func openMigrated(t *testing.T, path string) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(path)
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW returns a UnitOfWork over conn.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
