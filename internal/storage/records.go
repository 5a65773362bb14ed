package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"filedesk/internal/model"
)

func historyKey(email string) string {
	return "filing_history_" + email
}

// LoadHistory returns the full filing history for a user, newest first.
// An absent or corrupt partition yields an empty history, never an error.
func (s *SQLiteStorage) LoadHistory(ctx context.Context, email string) ([]model.FilingRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistoryLocked(ctx, email)
}

func (s *SQLiteStorage) loadHistoryLocked(ctx context.Context, email string) ([]model.FilingRecord, error) {
	raw, err := s.getPartition(ctx, historyKey(email))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []model.FilingRecord{}, nil
	}

	var records []model.FilingRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.dropCorrupt(ctx, historyKey(email), err)
		return []model.FilingRecord{}, nil
	}
	return records, nil
}

// SaveHistory overwrites the user's entire filing history partition.
func (s *SQLiteStorage) SaveHistory(ctx context.Context, email string, records []model.FilingRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveHistoryLocked(ctx, email, records)
}

func (s *SQLiteStorage) saveHistoryLocked(ctx context.Context, email string, records []model.FilingRecord) error {
	if records == nil {
		records = []model.FilingRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode filing history: %w", err)
	}
	return s.putPartition(ctx, historyKey(email), raw)
}

// UpdateHistory applies fn to the user's history as one atomic
// read-modify-write cycle. fn receives the current records and returns
// the records to persist.
func (s *SQLiteStorage) UpdateHistory(ctx context.Context, email string, fn func([]model.FilingRecord) []model.FilingRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("%w: fn", ErrNilParameter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadHistoryLocked(ctx, email)
	if err != nil {
		return err
	}
	return s.saveHistoryLocked(ctx, email, fn(records))
}

// ClearHistory deletes the user's filing history partition entirely.
func (s *SQLiteStorage) ClearHistory(ctx context.Context, email string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(email, "email"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletePartition(ctx, historyKey(email))
}
