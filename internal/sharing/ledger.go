// Package sharing records directed share relationships between users and
// answers the shared-with-me / shared-by-me views.
package sharing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"filedesk/internal/common"
	"filedesk/internal/model"
)

// emailPattern is the RFC-lite check the portal applies to recipients:
// non-whitespace local part, non-whitespace domain with a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Store is the slice of the partition store the ledger needs.
type Store interface {
	LoadHistory(ctx context.Context, email string) ([]model.FilingRecord, error)
	UpdateHistory(ctx context.Context, email string, fn func([]model.FilingRecord) []model.FilingRecord) error
	LoadSharedWith(ctx context.Context, email string) ([]model.SharedFile, error)
	AppendSharedWith(ctx context.Context, email string, file model.SharedFile) error
}

// Ledger implements the sharing operations over the partition store.
type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a sharing ledger. now may be nil to use time.Now.
func NewLedger(store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// ValidEmail reports whether addr passes the recipient address check.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// ParseRecipients splits a comma-separated recipient list, trims each
// address, and validates all of them upfront. Any invalid address rejects
// the whole batch before a single share is recorded.
func ParseRecipients(raw string) ([]string, error) {
	var recipients []string
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return nil, common.NewUserError("please enter at least one email address", common.ErrInvalidEmail)
	}

	var invalid []string
	for _, addr := range recipients {
		if !ValidEmail(addr) {
			invalid = append(invalid, addr)
		}
	}
	if len(invalid) > 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("invalid email address(es): %s", strings.Join(invalid, ", ")),
			common.ErrInvalidEmail,
		)
	}
	return recipients, nil
}

// Share records one directed share: the entry is appended to the record's
// own shares list and a snapshot of the record is appended to the
// recipient's shared-with partition. No dedup is enforced; sharing twice
// to the same address produces two entries.
func (l *Ledger) Share(ctx context.Context, recordID, fromEmail, toEmail string) (model.ShareEntry, error) {
	if !ValidEmail(toEmail) {
		return model.ShareEntry{}, fmt.Errorf("%w: %q", common.ErrInvalidEmail, toEmail)
	}

	entry := model.ShareEntry{
		ToUserEmail: toEmail,
		SharedAt:    l.now(),
	}

	var snapshot *model.FilingRecord
	err := l.store.UpdateHistory(ctx, fromEmail, func(records []model.FilingRecord) []model.FilingRecord {
		for i := range records {
			if records[i].ID == recordID {
				records[i].Shares = append(records[i].Shares, entry)
				snap := records[i]
				snapshot = &snap
				break
			}
		}
		return records
	})
	if err != nil {
		return model.ShareEntry{}, fmt.Errorf("failed to record share: %w", err)
	}
	if snapshot == nil {
		return model.ShareEntry{}, fmt.Errorf("record %s: %w", recordID, common.ErrNotFound)
	}

	shared := model.SharedFile{
		FileDetails:   *snapshot,
		FromUserEmail: fromEmail,
		SharedAt:      entry.SharedAt,
	}
	if err := l.store.AppendSharedWith(ctx, toEmail, shared); err != nil {
		return model.ShareEntry{}, fmt.Errorf("failed to index share for recipient: %w", err)
	}

	return entry, nil
}

// ShareBatch validates every recipient upfront, then shares sequentially.
// Once writes begin, each recipient is an independent share; a storage
// failure partway leaves earlier shares recorded.
func (l *Ledger) ShareBatch(ctx context.Context, recordID, fromEmail, rawRecipients string) ([]model.ShareEntry, error) {
	recipients, err := ParseRecipients(rawRecipients)
	if err != nil {
		return nil, err
	}

	entries := make([]model.ShareEntry, 0, len(recipients))
	for _, to := range recipients {
		entry, err := l.Share(ctx, recordID, fromEmail, to)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SharedWithMe returns everything shared to the given address, in share
// order.
func (l *Ledger) SharedWithMe(ctx context.Context, email string) ([]model.SharedFile, error) {
	return l.store.LoadSharedWith(ctx, email)
}

// SharedByMe returns every share entry on the user's own records, joined
// with the record it belongs to. Records are walked in history order.
func (l *Ledger) SharedByMe(ctx context.Context, email string) ([]model.SharedRecord, error) {
	records, err := l.store.LoadHistory(ctx, email)
	if err != nil {
		return nil, err
	}

	var out []model.SharedRecord
	for _, record := range records {
		for _, entry := range record.Shares {
			out = append(out, model.SharedRecord{Entry: entry, Record: record})
		}
	}
	return out, nil
}
