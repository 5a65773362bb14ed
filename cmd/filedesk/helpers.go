package main

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"filedesk/internal/config"
	"filedesk/internal/filing"
	"filedesk/internal/model"
	"filedesk/internal/profile"
	"filedesk/internal/session"
	"filedesk/internal/sharing"
	"filedesk/internal/status"
	"filedesk/internal/storage"
)

// app bundles the wired services behind one init point so every command
// sees the same storage and scheduler.
type app struct {
	store     *storage.SQLiteStorage
	scheduler *status.Scheduler
	filings   *filing.Service
	sessions  *session.Manager
	ledger    *sharing.Ledger
	profiles  *profile.Service
}

// initApp initializes storage with auto-migration and wires the services.
func initApp(ctx context.Context) (*app, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/filedesk/filedesk.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	delay := viper.GetDuration("processing.delay")
	if delay <= 0 {
		delay = status.DefaultDelay
	}

	scheduler := status.NewScheduler(store, delay)
	filings := filing.NewService(store, scheduler, nil)

	return &app{
		store:     store,
		scheduler: scheduler,
		filings:   filings,
		sessions:  session.NewManager(store, filings),
		ledger:    sharing.NewLedger(store, nil),
		profiles:  profile.NewService(store, nil),
	}, nil
}

// Close releases the underlying storage.
func (a *app) Close() error {
	return a.store.Close()
}

// requireUser returns the logged-in user or a friendly error.
func (a *app) requireUser(ctx context.Context) (model.User, error) {
	return a.sessions.Require(ctx)
}

// pageSize returns the configured history page size.
func pageSize() int {
	if n := viper.GetInt("history.page_size"); n > 0 {
		return n
	}
	return 10
}

// parseDate parses a YYYY-MM-DD filter bound.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
