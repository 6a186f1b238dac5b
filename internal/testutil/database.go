// Package testutil provides shared helpers for docsort tests.
package testutil

import (
	"context"
	"testing"

	"github.com/loandesk/docsort/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store and registers
// cleanup with the test.
func SetupTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
