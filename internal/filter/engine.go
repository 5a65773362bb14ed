// Package filter evaluates history filter specifications against filing
// record collections.
package filter

import (
	"sort"
	"strings"
	"time"

	"filedesk/internal/model"
)

// Apply returns the records matching every active predicate in spec,
// preserving input order. It is pure: the input slice is never mutated and
// the result is always a fresh slice.
func Apply(records []model.FilingRecord, spec model.FilterSpec) []model.FilingRecord {
	matched := make([]model.FilingRecord, 0, len(records))
	for _, record := range records {
		if matches(record, spec) {
			matched = append(matched, record)
		}
	}
	return matched
}

// matches evaluates all predicates with AND composition. Inactive
// predicates (zero values) always pass.
func matches(record model.FilingRecord, spec model.FilterSpec) bool {
	if !matchesSearch(record, spec.Search) {
		return false
	}
	if spec.Status != "" && record.Status != spec.Status {
		return false
	}
	if spec.CompanyName != "" && record.Details.CompanyName != spec.CompanyName {
		return false
	}
	if spec.DateFrom != nil && record.CreatedAt.Before(startOfDay(*spec.DateFrom)) {
		return false
	}
	if spec.DateTo != nil && record.CreatedAt.After(endOfDay(*spec.DateTo)) {
		return false
	}
	return true
}

// matchesSearch checks the case-insensitive substring search across the
// derived request id, company name, filename, status and description.
func matchesSearch(record model.FilingRecord, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)

	haystacks := []string{
		record.RequestID(),
		record.Details.CompanyName,
		record.Filename,
		string(record.Status),
		record.Details.Description,
	}
	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns 23:59:59.999 of the given date; the date-to bound is
// inclusive of the whole day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// Statuses returns the distinct statuses present in records, sorted.
// Used to populate filter choices.
func Statuses(records []model.FilingRecord) []model.Status {
	keys := distinct(records, func(r model.FilingRecord) string { return string(r.Status) })
	out := make([]model.Status, len(keys))
	for i, k := range keys {
		out[i] = model.Status(k)
	}
	return out
}

// Companies returns the distinct non-empty company names in records,
// sorted.
func Companies(records []model.FilingRecord) []string {
	return distinct(records, func(r model.FilingRecord) string { return r.Details.CompanyName })
}

func distinct(records []model.FilingRecord, key func(model.FilingRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	keys := make([]string, 0, len(records))
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
