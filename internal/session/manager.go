// Package session manages the login lifecycle: session persistence across
// runs, view restoration, and teardown on logout.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"filedesk/internal/common"
	"filedesk/internal/model"
)

// Views are the top-level surfaces whose last active choice persists
// across runs.
const (
	ViewDashboard = "dashboard"
	ViewHistory   = "history"
	ViewProfile   = "profile"
)

// Store is the slice of the partition store the session manager needs.
type Store interface {
	LoadSession(ctx context.Context) (model.User, error)
	SaveSession(ctx context.Context, user model.User) error
	ClearSession(ctx context.Context) error
	LoadView(ctx context.Context) (string, error)
	SaveView(ctx context.Context, view string) error
}

// Clearer removes a user's filing data; on guest logout the manager tears
// the guest's partition down through it.
type Clearer interface {
	Clear(ctx context.Context, ownerEmail string) error
}

// Manager owns the application session state.
type Manager struct {
	store   Store
	filings Clearer
}

// NewManager creates a session manager.
func NewManager(store Store, filings Clearer) *Manager {
	return &Manager{store: store, filings: filings}
}

// Login persists the user session.
func (m *Manager) Login(ctx context.Context, user model.User) error {
	if user == nil {
		return fmt.Errorf("cannot log in a nil user")
	}
	if err := m.store.SaveSession(ctx, user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	slog.Info("Logged in", "method", user.Method(), "email", user.Email())
	return nil
}

// Current returns the persisted session, or nil when nobody is logged in.
func (m *Manager) Current(ctx context.Context) (model.User, error) {
	return m.store.LoadSession(ctx)
}

// Require returns the persisted session or ErrNotLoggedIn.
func (m *Manager) Require(ctx context.Context) (model.User, error) {
	user, err := m.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewUserError("please log in first", common.ErrNotLoggedIn)
	}
	return user, nil
}

// Logout tears the session down. Guest data is ephemeral: a guest logout
// clears the guest's filing partition (and with it any pending status
// flips); other login methods keep their data for the next session.
func (m *Manager) Logout(ctx context.Context) error {
	user, err := m.store.LoadSession(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if user.Method() == model.LoginGuest {
		if err := m.filings.Clear(ctx, user.Email()); err != nil {
			return fmt.Errorf("failed to clear guest data: %w", err)
		}
	}

	if err := m.store.ClearSession(ctx); err != nil {
		return err
	}

	slog.Info("Logged out", "method", user.Method(), "email", user.Email())
	return nil
}

// View returns the persisted top-level view, defaulting to the dashboard
// when nothing valid is stored.
func (m *Manager) View(ctx context.Context) string {
	view, err := m.store.LoadView(ctx)
	if err != nil {
		slog.Warn("Failed to load view", "error", err)
		return ViewDashboard
	}
	switch view {
	case ViewDashboard, ViewHistory, ViewProfile:
		return view
	}
	return ViewDashboard
}

// SetView persists the active top-level view. Unknown names are rejected.
func (m *Manager) SetView(ctx context.Context, view string) error {
	switch view {
	case ViewDashboard, ViewHistory, ViewProfile:
		return m.store.SaveView(ctx, view)
	}
	return fmt.Errorf("%w: unknown view %q", common.ErrValidation, view)
}
