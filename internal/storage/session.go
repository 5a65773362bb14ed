package storage

import (
	"context"
	"fmt"

	"filedesk/internal/model"
)

const (
	sessionKey = "user_session"
	viewKey    = "current_view"
)

// LoadSession returns the persisted user session, or nil when no session
// exists. A corrupt session partition is dropped and read as absent.
func (s *SQLiteStorage) LoadSession(ctx context.Context) (model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.getPartition(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	user, err := model.UnmarshalUser(raw)
	if err != nil {
		s.dropCorrupt(ctx, sessionKey, err)
		return nil, nil
	}
	return user, nil
}

// SaveSession persists the current user session.
func (s *SQLiteStorage) SaveSession(ctx context.Context, user model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}

	raw, err := model.MarshalUser(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putPartition(ctx, sessionKey, raw)
}

// ClearSession removes the session and the persisted view.
func (s *SQLiteStorage) ClearSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deletePartition(ctx, sessionKey); err != nil {
		return err
	}
	return s.deletePartition(ctx, viewKey)
}

// LoadView returns the last active top-level view, or "" when none is
// persisted.
func (s *SQLiteStorage) LoadView(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.getPartition(ctx, viewKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SaveView persists the active top-level view name.
func (s *SQLiteStorage) SaveView(ctx context.Context, view string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(view, "view"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putPartition(ctx, viewKey, []byte(view))
}
