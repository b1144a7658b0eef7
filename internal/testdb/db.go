// Package testdb provides helpers for integration tests that exercise the
// real Postgres stores. Tests using it skip themselves unless a database
// URL is present in the environment, so the default `go test` run stays
// hermetic.
package testdb

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout is the default timeout for test database operations.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for integration tests.
// It checks DATABASE_URL and STOREFRONT_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("STOREFRONT_TEST_DB_URL")
}

// Open connects to the test database and applies the schema migrations,
// skipping the test when no database URL is configured. The connection is
// closed automatically when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("integration test: set DATABASE_URL or STOREFRONT_TEST_DB_URL to run")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, db.Ping(), "failed to reach test database")

	applyMigrations(t, db)
	return db
}

// applyMigrations runs the embedded schema migrations against the test
// database.
func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	require.NoError(t, goose.SetDialect("postgres"))
	goose.SetBaseFS(os.DirFS(migrationsDir(t)))
	require.NoError(t, goose.Up(db, "."), "failed to apply migrations")
}

// migrationsDir locates the migration files relative to this source file,
// which is stable regardless of the test's working directory.
func migrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "failed to locate testdb source file")

	dir := filepath.Join(filepath.Dir(file), "..", "..", "cmd", "server", "migrations")
	require.DirExists(t, dir)
	return dir
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// tests isolated from each other even when they share a database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
