package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"filedesk/internal/model"
)

func profileKey(email string) string {
	return "profile_data_" + email
}

func profileImageKey(email string) string {
	return "profile_image_" + email
}

// LoadProfile returns the persisted profile for a user, or nil when none
// exists.
func (s *SQLiteStorage) LoadProfile(ctx context.Context, email string) (*model.Profile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.getPartition(ctx, profileKey(email))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var profile model.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.dropCorrupt(ctx, profileKey(email), err)
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile overwrites the user's profile partition.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, email string, profile model.Profile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putPartition(ctx, profileKey(email), raw)
}

// LoadProfileImage returns the stored avatar image data, or nil when no
// image is set.
func (s *SQLiteStorage) LoadProfileImage(ctx context.Context, email string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getPartition(ctx, profileImageKey(email))
}

// SaveProfileImage stores the avatar image data for a user.
func (s *SQLiteStorage) SaveProfileImage(ctx context.Context, email string, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: data", ErrNilParameter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putPartition(ctx, profileImageKey(email), data)
}

// DeleteProfileImage removes the stored avatar image.
func (s *SQLiteStorage) DeleteProfileImage(ctx context.Context, email string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletePartition(ctx, profileImageKey(email))
}
