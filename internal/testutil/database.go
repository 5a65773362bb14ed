// Package testutil provides shared test helpers for the filedesk project.
package testutil

import (
	"context"
	"testing"
	"time"

	"filedesk/internal/model"
	"filedesk/internal/storage"
)

// SetupTestDB creates a new in-memory partition store. It automatically
// handles migrations and cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
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

// Record builds a filing record for tests. The id is derived from
// createdAt the same way uploads derive it.
func Record(createdAt time.Time, company string, status model.Status) model.FilingRecord {
	return model.FilingRecord{
		ID:        model.NewRecordID(createdAt),
		CreatedAt: createdAt,
		Details: model.FilingDetails{
			Mandate:     model.MandateACFR,
			CompanyName: company,
		},
		Filename:   company + ".pdf",
		Status:     status,
		OwnerEmail: "owner@example.com",
	}
}
