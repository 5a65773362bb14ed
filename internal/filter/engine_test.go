package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/model"
	"filedesk/internal/testutil"
)

func datePtr(t time.Time) *time.Time { return &t }

func sampleRecords() []model.FilingRecord {
	return []model.FilingRecord{
		testutil.Record(time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC), "Acme Corp", model.StatusCompleted),
		testutil.Record(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), "Beta Industries", model.StatusProcessing),
		testutil.Record(time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC), "Acme Corp", model.StatusCompleted),
		testutil.Record(time.Date(2026, 2, 20, 8, 0, 7, 0, time.UTC), "Gamma LLC", model.StatusProcessing),
	}
}

func TestApplyEmptySpecReturnsAll(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, model.FilterSpec{})
	assert.Equal(t, records, got)
}

func TestApplySearch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{name: "company case-insensitive", search: "acme", want: 2},
		{name: "filename", search: "beta industries.pdf", want: 1},
		{name: "status substring", search: "process", want: 2},
		{name: "no match", search: "zzz-nothing", want: 0},
		{name: "request id", search: records[3].RequestID(), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, model.FilterSpec{Search: tt.search})
			assert.Len(t, got, tt.want)
		})
	}
}

func TestApplySearchDescription(t *testing.T) {
	records := sampleRecords()
	records[1].Details.Description = "Quarterly Submission"

	got := Apply(records, model.FilterSpec{Search: "quarterly"})
	require.Len(t, got, 1)
	assert.Equal(t, "Beta Industries", got[0].Details.CompanyName)
}

func TestApplyStatusExact(t *testing.T) {
	got := Apply(sampleRecords(), model.FilterSpec{Status: model.StatusCompleted})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, model.StatusCompleted, r.Status)
	}
}

func TestApplyCompanyExact(t *testing.T) {
	got := Apply(sampleRecords(), model.FilterSpec{CompanyName: "Acme Corp"})
	assert.Len(t, got, 2)

	// Substring is not enough for the exact predicate.
	got = Apply(sampleRecords(), model.FilterSpec{CompanyName: "Acme"})
	assert.Empty(t, got)
}

func TestApplyDateRange(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name string
		spec model.FilterSpec
		want int
	}{
		{
			name: "from bound is inclusive of the day start",
			spec: model.FilterSpec{DateFrom: datePtr(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))},
			want: 3,
		},
		{
			name: "to bound includes the whole end day",
			spec: model.FilterSpec{DateTo: datePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))},
			want: 2,
		},
		{
			name: "range",
			spec: model.FilterSpec{
				DateFrom: datePtr(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
				DateTo:   datePtr(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)),
			},
			want: 1,
		},
		{
			name: "empty range",
			spec: model.FilterSpec{
				DateFrom: datePtr(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
				DateTo:   datePtr(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.spec)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestApplyComposesWithAnd(t *testing.T) {
	got := Apply(sampleRecords(), model.FilterSpec{
		Search:      "acme",
		Status:      model.StatusCompleted,
		CompanyName: "Acme Corp",
		DateFrom:    datePtr(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)),
	})
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC), got[0].CreatedAt)
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	records := sampleRecords()
	before := make([]model.FilingRecord, len(records))
	copy(before, records)

	got := Apply(records, model.FilterSpec{CompanyName: "Acme Corp"})
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt), "input order preserved")
	assert.Equal(t, before, records, "input slice untouched")

	// Re-applying the same spec is idempotent.
	assert.Equal(t, got, Apply(got, model.FilterSpec{CompanyName: "Acme Corp"}))
}

func TestStatusesAndCompanies(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, []model.Status{model.StatusCompleted, model.StatusProcessing}, Statuses(records))
	assert.Equal(t, []string{"Acme Corp", "Beta Industries", "Gamma LLC"}, Companies(records))

	assert.Empty(t, Companies(nil))
}
