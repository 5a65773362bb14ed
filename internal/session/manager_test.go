package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/common"
	"filedesk/internal/filing"
	"filedesk/internal/model"
	"filedesk/internal/session"
	"filedesk/internal/status"
	"filedesk/internal/storage"
	"filedesk/internal/testutil"
)

func newManager(t *testing.T) (*session.Manager, *storage.SQLiteStorage) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	scheduler := status.NewScheduler(store, time.Minute)
	filings := filing.NewService(store, scheduler, nil)
	return session.NewManager(store, filings), store
}

func TestLoginPersistsAcrossManagers(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	user := model.GuestUser{Name: "Pat Doe", EmailAddress: "pat@example.com"}
	require.NoError(t, m.Login(ctx, user))

	// A fresh manager over the same store sees the session.
	again := session.NewManager(store, nil)
	current, err := again.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, model.LoginGuest, current.Method())
	assert.Equal(t, "pat@example.com", current.Email())
}

func TestLoginNilUser(t *testing.T) {
	m, _ := newManager(t)
	require.Error(t, m.Login(context.Background(), nil))
}

func TestCurrentWithoutSession(t *testing.T) {
	m, _ := newManager(t)
	current, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestRequire(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.Require(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))

	require.NoError(t, m.Login(ctx, model.PasswordUser{EmailAddress: "pat@example.com"}))
	user, err := m.Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.Email())
}

func TestGuestLogoutClearsFilings(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	guest := model.GuestUser{Name: "Pat Doe", EmailAddress: "pat@example.com"}
	require.NoError(t, m.Login(ctx, guest))
	require.NoError(t, store.SaveHistory(ctx, guest.Email(), []model.FilingRecord{
		testutil.Record(time.Now(), "Acme Corp", model.StatusCompleted),
	}))

	require.NoError(t, m.Logout(ctx))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	records, err := store.LoadHistory(ctx, guest.Email())
	require.NoError(t, err)
	assert.Empty(t, records, "guest data is ephemeral")
}

func TestPasswordLogoutKeepsFilings(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	user := model.PasswordUser{EmailAddress: "pat@example.com"}
	require.NoError(t, m.Login(ctx, user))
	require.NoError(t, store.SaveHistory(ctx, user.Email(), []model.FilingRecord{
		testutil.Record(time.Now(), "Acme Corp", model.StatusCompleted),
	}))

	require.NoError(t, m.Logout(ctx))

	records, err := store.LoadHistory(ctx, user.Email())
	require.NoError(t, err)
	assert.Len(t, records, 1, "non-guest data survives logout")
}

func TestLogoutWithoutSession(t *testing.T) {
	m, _ := newManager(t)
	assert.NoError(t, m.Logout(context.Background()))
}

func TestViewPersistence(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	assert.Equal(t, session.ViewDashboard, m.View(ctx), "default view")

	require.NoError(t, m.SetView(ctx, session.ViewHistory))
	assert.Equal(t, session.ViewHistory, m.View(ctx))

	err := m.SetView(ctx, "settings")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Equal(t, session.ViewHistory, m.View(ctx), "rejected view leaves the stored one")
}

func TestLogoutClearsView(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, model.PasswordUser{EmailAddress: "pat@example.com"}))
	require.NoError(t, m.SetView(ctx, session.ViewProfile))
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, session.ViewDashboard, m.View(ctx))
}
