package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"filedesk/internal/model"
)

func sharedWithKey(email string) string {
	return "shared_with_" + email
}

// LoadSharedWith returns the recipient-indexed share partition for a user.
// Absent or corrupt partitions yield an empty list.
func (s *SQLiteStorage) LoadSharedWith(ctx context.Context, email string) ([]model.SharedFile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSharedWithLocked(ctx, email)
}

func (s *SQLiteStorage) loadSharedWithLocked(ctx context.Context, email string) ([]model.SharedFile, error) {
	raw, err := s.getPartition(ctx, sharedWithKey(email))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []model.SharedFile{}, nil
	}

	var shared []model.SharedFile
	if err := json.Unmarshal(raw, &shared); err != nil {
		s.dropCorrupt(ctx, sharedWithKey(email), err)
		return []model.SharedFile{}, nil
	}
	return shared, nil
}

// AppendSharedWith appends one shared-file entry to the recipient's
// partition as an atomic read-modify-write cycle.
func (s *SQLiteStorage) AppendSharedWith(ctx context.Context, email string, file model.SharedFile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shared, err := s.loadSharedWithLocked(ctx, email)
	if err != nil {
		return err
	}
	shared = append(shared, file)

	raw, err := json.Marshal(shared)
	if err != nil {
		return fmt.Errorf("failed to encode shared files: %w", err)
	}
	return s.putPartition(ctx, sharedWithKey(email), raw)
}
