package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(id string) model.FilingRecord {
	return model.FilingRecord{
		ID:        id,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Filename:  "report.pdf",
		Status:    model.StatusProcessing,
		Details:   model.FilingDetails{Mandate: model.MandateACFR, CompanyName: "Acme Corp"},
	}
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.Error(t, err)
}

func TestMigrateIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestHistoryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Absent partition reads as empty.
	records, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, records)

	want := []model.FilingRecord{testRecord("100"), testRecord("200")}
	require.NoError(t, store.SaveHistory(ctx, "a@example.com", want))

	got, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHistoryPartitionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "a@example.com", []model.FilingRecord{testRecord("100")}))

	records, err := store.LoadHistory(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdateHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "a@example.com", []model.FilingRecord{testRecord("100")}))

	err := store.UpdateHistory(ctx, "a@example.com", func(records []model.FilingRecord) []model.FilingRecord {
		for i := range records {
			records[i].Status = model.StatusCompleted
		}
		return append([]model.FilingRecord{testRecord("200")}, records...)
	})
	require.NoError(t, err)

	got, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "200", got[0].ID)
	assert.Equal(t, model.StatusCompleted, got[1].Status)
}

func TestUpdateHistoryNilFn(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateHistory(context.Background(), "a@example.com", nil)
	require.Error(t, err)
}

func TestUpdateHistoryConcurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			_ = store.UpdateHistory(ctx, "a@example.com", func(records []model.FilingRecord) []model.FilingRecord {
				return append(records, testRecord(model.NewRecordID(time.UnixMilli(int64(n)))))
			})
		}(i)
	}
	wg.Wait()

	got, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, got, writers, "every read-modify-write cycle must land")
}

func TestClearHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "a@example.com", []model.FilingRecord{testRecord("100")}))
	require.NoError(t, store.ClearHistory(ctx, "a@example.com"))
	require.NoError(t, store.ClearHistory(ctx, "a@example.com"), "clearing an absent partition is fine")

	got, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorruptHistoryDropped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.putPartition(ctx, historyKey("a@example.com"), []byte("{not json")))

	got, err := store.LoadHistory(ctx, "a@example.com")
	require.NoError(t, err, "corrupt state reads as absent")
	assert.Empty(t, got)

	// The corrupt partition was dropped, not left to fail again.
	raw, err := store.getPartition(ctx, historyKey("a@example.com"))
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, store.SaveSession(ctx, model.GuestUser{Name: "Pat Doe", EmailAddress: "pat@example.com"}))

	user, err = store.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "pat@example.com", user.Email())

	require.NoError(t, store.ClearSession(ctx))
	user, err = store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCorruptSessionDropped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.putPartition(ctx, sessionKey, []byte(`{"user":"ldap"}`)))

	user, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestViewRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	view, err := store.LoadView(ctx)
	require.NoError(t, err)
	assert.Empty(t, view)

	require.NoError(t, store.SaveView(ctx, "history"))
	view, err = store.LoadView(ctx)
	require.NoError(t, err)
	assert.Equal(t, "history", view)
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.LoadProfile(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)

	want := model.Profile{FullName: "Pat Doe", Email: "a@example.com", Phone: "123-456-7890", Plan: "FREE"}
	require.NoError(t, store.SaveProfile(ctx, "a@example.com", want))

	p, err = store.LoadProfile(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, want, *p)
}

func TestProfileImageLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data, err := store.LoadProfileImage(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.SaveProfileImage(ctx, "a@example.com", []byte("img-bytes")))
	data, err = store.LoadProfileImage(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("img-bytes"), data)

	require.NoError(t, store.DeleteProfileImage(ctx, "a@example.com"))
	data, err = store.LoadProfileImage(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSharedWithAppend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shared, err := store.LoadSharedWith(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Empty(t, shared)

	file := model.SharedFile{
		SharedAt:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		FromUserEmail: "a@example.com",
		FileDetails:   testRecord("100"),
	}
	require.NoError(t, store.AppendSharedWith(ctx, "b@example.com", file))
	require.NoError(t, store.AppendSharedWith(ctx, "b@example.com", file))

	shared, err = store.LoadSharedWith(ctx, "b@example.com")
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, "a@example.com", shared[0].FromUserEmail)
	assert.Equal(t, "100", shared[0].FileDetails.ID)
}

func TestValidationRejectsEmptyEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadHistory(ctx, "")
	require.Error(t, err)

	_, err = store.LoadHistory(ctx, "   ")
	require.Error(t, err)
}
