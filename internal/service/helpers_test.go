package service_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"fachowiec/backend/internal/db"
	"fachowiec/backend/internal/repository"
	"fachowiec/backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return store.New(database)
}

func newEntryRepo(t *testing.T) *repository.TimeEntryRepository {
	t.Helper()
	return repository.NewTimeEntryRepository(newTestStore(t))
}

// fakeClock stands in for the monotonic clock so tests control elapsed time.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
