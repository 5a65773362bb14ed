// Package status simulates filing processing: it schedules the one-shot
// Processing→Completed flip for newly created records.
package status

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"filedesk/internal/common"
	"filedesk/internal/model"
)

// DefaultDelay is the simulated processing time for a new filing.
const DefaultDelay = 3 * time.Second

// Store is the slice of the record store the scheduler needs.
type Store interface {
	UpdateHistory(ctx context.Context, email string, fn func([]model.FilingRecord) []model.FilingRecord) error
}

// Scheduler tracks one outstanding completion timer per record id. Timers
// are cancellable individually and per owner, so a logout or partition
// clear never leaves a dangling write behind.
type Scheduler struct {
	store   Store
	pending map[string]*task
	delay   time.Duration
	mu      sync.Mutex
}

type task struct {
	timer *time.Timer
	done  chan struct{}
	owner string
}

// NewScheduler creates a scheduler flipping record statuses after delay.
// A non-positive delay falls back to DefaultDelay.
func NewScheduler(store Store, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		store:   store,
		delay:   delay,
		pending: make(map[string]*task),
	}
}

// Delay returns the configured processing delay.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Schedule arms the completion timer for a record. Scheduling the same
// record twice replaces the earlier timer. The returned channel closes
// once the flip has been written (or skipped because the record is gone).
func (s *Scheduler) Schedule(ownerEmail, recordID string) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.pending[recordID]; ok {
		prev.timer.Stop()
	}

	t := &task{
		owner: ownerEmail,
		done:  make(chan struct{}),
	}
	t.timer = time.AfterFunc(s.delay, func() {
		s.complete(ownerEmail, recordID)
		s.forget(recordID)
		close(t.done)
	})
	s.pending[recordID] = t

	return t.done
}

// complete flips the record to Completed if it still exists and is still
// Processing. A record removed in the meantime is left alone: the write
// back must never recreate it.
func (s *Scheduler) complete(ownerEmail, recordID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.store.UpdateHistory(ctx, ownerEmail, func(records []model.FilingRecord) []model.FilingRecord {
		for i := range records {
			if records[i].ID == recordID && records[i].Status == model.StatusProcessing {
				records[i].Status = model.StatusCompleted
			}
		}
		return records
	})
	if err != nil {
		common.LogError(err, "Failed to complete filing", common.Fields{
			"record_id": recordID,
			"owner":     ownerEmail,
		})
		return
	}

	slog.Debug("Filing completed", "record_id", recordID, "owner", ownerEmail)
}

func (s *Scheduler) forget(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, recordID)
}

// Cancel stops the outstanding timer for a record, if any. The record
// stays Processing forever; that is the caller's problem to resolve.
func (s *Scheduler) Cancel(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[recordID]; ok {
		t.timer.Stop()
		delete(s.pending, recordID)
	}
}

// CancelOwner stops every outstanding timer belonging to one user. Called
// on logout/clear so no flip can land after the partition is deleted.
func (s *Scheduler) CancelOwner(ownerEmail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.pending {
		if t.owner == ownerEmail {
			t.timer.Stop()
			delete(s.pending, id)
		}
	}
}

// Outstanding returns the number of armed timers.
func (s *Scheduler) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
