// Package testutil provides shared helpers for package tests.
//
// SQL repositories written in the "?" placeholder dialect run against a real SQLite
// database migrated from migrations/sqlite:
//
//	db := testutil.SetupSQLiteDB(t)
//
// The database lives in t.TempDir() and is closed when the test ends.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cardguard/internal/database"
)

// SetupSQLiteDB opens a fresh SQLite database with every migration applied.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver:           "sqlite",
		ConnectionString: filepath.Join(t.TempDir(), "cardguard.db"),
		ConnMaxLifetime:  time.Hour,
	})
	require.NoError(t, err, "failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	sourceURL, err := database.FindMigrations("sqlite")
	require.NoError(t, err, "failed to find sqlite migrations")
	require.NoError(t, database.Migrate(db, "sqlite", sourceURL), "failed to run sqlite migrations")

	return db
}

// NewSQLMock returns a sqlmock-backed database. Unmet expectations fail the test on cleanup.
func NewSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}
