// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB gets its own namespace with the schema migrations applied,
// so tests run real queries against a real server without seeing each
// other's rows. When no server is reachable the test is skipped.
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER
// and TEST_DB_PASSWORD (defaults localhost:8000, root/root). The schema is
// read from DB_MIGRATIONS_DIR or the nearest ./migrations directory above
// the package under test.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//
//	    result, err := tdb.DB.Query(tdb.Ctx(), "SELECT * FROM dating_profile", nil)
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/snuhangout/api/internal/database"
)

// TestDB provides an isolated database environment for testing.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	// migrationOnce ensures migrations are only read from disk once
	migrationOnce sync.Once
	migrations    []database.Migration
	migrationErr  error

	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// getTestConfig returns database config from environment or defaults
func getTestConfig() database.Config {
	return database.Config{
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     envOr("TEST_DB_PORT", "8000"),
		User:     envOr("TEST_DB_USER", "root"),
		Password: envOr("TEST_DB_PASSWORD", "root"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

func loadMigrations() ([]database.Migration, error) {
	migrationOnce.Do(func() {
		dir := os.Getenv("DB_MIGRATIONS_DIR")
		if dir == "" {
			dir, migrationErr = database.FindMigrationsDir()
			if migrationErr != nil {
				return
			}
		}
		migrations, migrationErr = database.LoadMigrations(dir)
	})
	return migrations, migrationErr
}

// New creates a new isolated test database with migrations applied and
// registers cleanup with t. The test is skipped when SurrealDB is not
// reachable, or when TEST_DB_SKIP is set.
func New(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("TEST_DB_SKIP") != "" {
		t.Skip("testdb: TEST_DB_SKIP set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Skipf("testdb: SurrealDB unavailable at %s:%s: %v", cfg.Host, cfg.Port, err)
	}

	tdb := &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}

	migs, err := loadMigrations()
	if err != nil {
		_ = db.Close()
		t.Fatalf("testdb: failed to load migrations: %v", err)
	}
	if err := database.Migrate(ctx, db, migs); err != nil {
		_ = db.Close()
		t.Fatalf("testdb: %v", err)
	}

	t.Cleanup(tdb.close)
	return tdb
}

// close removes the test namespace and closes the connection
func (tdb *TestDB) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
}

// Ctx returns a context bounded by the test's lifetime
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustExec executes a query and fails the test on error.
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()
	if err := tdb.DB.Execute(tdb.Ctx(), query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}

// MustQuery executes a query and returns results, failing the test on error.
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query failed: %v\nQuery: %s", err, query)
	}
	return results
}
