package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordID(t *testing.T) {
	createdAt := time.UnixMilli(1700000000000)
	assert.Equal(t, "1700000000000", NewRecordID(createdAt))
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "exact million boundary", id: "1700000000000", want: "000000"},
		{name: "low remainder gets padded", id: "1700000000042", want: "000042"},
		{name: "full six digits", id: "1700000123456", want: "123456"},
		{name: "surrounding whitespace", id: " 1700000123456 ", want: "123456"},
		{name: "non-numeric falls back", id: "not-a-number", want: "000000"},
		{name: "empty falls back", id: "", want: "000000"},
		{name: "negative falls back", id: "-5", want: "000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestID(tt.id))
		})
	}
}

func TestRequestIDStable(t *testing.T) {
	record := FilingRecord{ID: NewRecordID(time.UnixMilli(1700000654321))}
	first := record.RequestID()
	assert.Equal(t, first, record.RequestID())
	assert.Len(t, first, 6)
}

func TestSubmissionTypes(t *testing.T) {
	assert.Empty(t, SubmissionTypes(MandateACFR))
	assert.Empty(t, SubmissionTypes(MandateSBC))
	assert.Equal(t, []string{"FS-MFRS", "FS-MPERS"}, SubmissionTypes(MandateMBRS))
}

func TestFilingDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		details FilingDetails
		wantErr string
	}{
		{
			name:    "valid ACFR",
			details: FilingDetails{Mandate: MandateACFR, CompanyName: "Acme Corp"},
		},
		{
			name:    "valid SBC with description",
			details: FilingDetails{Mandate: MandateSBC, CompanyName: "Acme Corp", Description: "annual"},
		},
		{
			name:    "valid MBRS with MFRS",
			details: FilingDetails{Mandate: MandateMBRS, CompanyName: "Acme Corp", SubmissionType: "FS-MFRS"},
		},
		{
			name:    "valid MBRS with MPERS",
			details: FilingDetails{Mandate: MandateMBRS, CompanyName: "Acme Corp", SubmissionType: "FS-MPERS"},
		},
		{
			name:    "unknown mandate",
			details: FilingDetails{Mandate: "XBRL", CompanyName: "Acme Corp"},
			wantErr: "invalid mandate",
		},
		{
			name:    "missing company",
			details: FilingDetails{Mandate: MandateACFR},
			wantErr: "company name is required",
		},
		{
			name:    "MBRS without submission type",
			details: FilingDetails{Mandate: MandateMBRS, CompanyName: "Acme Corp"},
			wantErr: "requires a submission type",
		},
		{
			name:    "MBRS with unknown submission type",
			details: FilingDetails{Mandate: MandateMBRS, CompanyName: "Acme Corp", SubmissionType: "FS-OTHER"},
			wantErr: "invalid submission type",
		},
		{
			name:    "ACFR rejects submission type",
			details: FilingDetails{Mandate: MandateACFR, CompanyName: "Acme Corp", SubmissionType: "FS-MFRS"},
			wantErr: "does not take a submission type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
