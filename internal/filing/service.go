// Package filing implements the upload/history/download operations over
// the record store.
package filing

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filedesk/internal/common"
	"filedesk/internal/model"
	"filedesk/internal/status"
)

// pdfMagic is the leading byte signature of a PDF document.
var pdfMagic = []byte("%PDF-")

// Store is the slice of the partition store the filing service needs.
type Store interface {
	LoadHistory(ctx context.Context, email string) ([]model.FilingRecord, error)
	UpdateHistory(ctx context.Context, email string, fn func([]model.FilingRecord) []model.FilingRecord) error
	ClearHistory(ctx context.Context, email string) error
}

// Service wires the record store and the status scheduler together.
type Service struct {
	store     Store
	scheduler *status.Scheduler
	now       func() time.Time
}

// NewService creates a filing service. now may be nil to use time.Now.
func NewService(store Store, scheduler *status.Scheduler, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, scheduler: scheduler, now: now}
}

// ValidateFile applies the upload file rules: .pdf extension, PDF content
// signature, non-empty.
func ValidateFile(filename string, content []byte) error {
	if filename == "" {
		return fmt.Errorf("%w: please select a file", common.ErrValidation)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return fmt.Errorf("%w: file must have a .pdf extension", common.ErrValidation)
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: file cannot be empty", common.ErrValidation)
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		return fmt.Errorf("%w: only PDF files are allowed", common.ErrValidation)
	}
	return nil
}

// Upload validates the filing and creates the record, newest-first, with
// status Processing, then arms the completion timer. The returned channel
// closes once the status flip has been written; callers are free to ignore
// it.
func (s *Service) Upload(ctx context.Context, details model.FilingDetails, filename string, content []byte, ownerEmail string) (*model.FilingRecord, <-chan struct{}, error) {
	if err := details.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := ValidateFile(filename, content); err != nil {
		return nil, nil, err
	}

	createdAt := s.now()
	record := model.FilingRecord{
		ID:         model.NewRecordID(createdAt),
		CreatedAt:  createdAt,
		Details:    details,
		Filename:   filepath.Base(filename),
		Status:     model.StatusProcessing,
		Content:    fmt.Sprintf("PDF_FILE_PLACEHOLDER_%s_%d", filepath.Base(filename), len(content)),
		OwnerEmail: ownerEmail,
	}

	err := s.store.UpdateHistory(ctx, ownerEmail, func(records []model.FilingRecord) []model.FilingRecord {
		return append([]model.FilingRecord{record}, records...)
	})
	if err != nil {
		return nil, nil, common.NewUserError("upload failed", err)
	}

	done := s.scheduler.Schedule(ownerEmail, record.ID)
	return &record, done, nil
}

// History returns the user's full filing history, newest first.
func (s *Service) History(ctx context.Context, ownerEmail string) ([]model.FilingRecord, error) {
	return s.store.LoadHistory(ctx, ownerEmail)
}

// StatusCounts returns the per-status totals of the user's history.
func (s *Service) StatusCounts(ctx context.Context, ownerEmail string) (map[model.Status]int, error) {
	records, err := s.store.LoadHistory(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.Status]int, 2)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts, nil
}

// Download writes a generated text summary of a Completed filing to dir
// and returns the written path. A missing record is ErrNotFound; a record
// still Processing is ErrNotReady.
func (s *Service) Download(ctx context.Context, id, ownerEmail, dir string) (string, error) {
	records, err := s.store.LoadHistory(ctx, ownerEmail)
	if err != nil {
		return "", err
	}

	var record *model.FilingRecord
	for i := range records {
		if records[i].ID == id {
			record = &records[i]
			break
		}
	}
	if record == nil {
		return "", fmt.Errorf("filing %s: %w", id, common.ErrNotFound)
	}
	if record.Status != model.StatusCompleted {
		return "", fmt.Errorf("filing %s: %w", id, common.ErrNotReady)
	}

	summary := fmt.Sprintf(
		"This is a placeholder for the file: %s\n\nFile Details:\n- ID: %s\n- Upload Date: %s\n- Company: %s\n- Mandate: %s\n- Status: %s\n",
		record.Filename,
		record.ID,
		record.CreatedAt.Format(time.RFC3339),
		record.Details.CompanyName,
		record.Details.Mandate,
		record.Status,
	)

	name := strings.TrimSuffix(record.Filename, filepath.Ext(record.Filename)) + "_details.txt"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(summary), 0600); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// Clear deletes the user's filing partition and cancels any outstanding
// completion timers so nothing writes to the deleted partition afterwards.
func (s *Service) Clear(ctx context.Context, ownerEmail string) error {
	s.scheduler.CancelOwner(ownerEmail)
	return s.store.ClearHistory(ctx, ownerEmail)
}
