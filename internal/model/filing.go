// Package model defines the core domain types for the filing desk.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mandate identifies the filing category and determines which metadata
// fields are required.
type Mandate string

// Supported mandates.
const (
	MandateACFR Mandate = "ACFR"
	MandateSBC  Mandate = "SBC"
	MandateMBRS Mandate = "MBRS"
)

// Mandates lists all supported mandates in display order.
var Mandates = []Mandate{MandateACFR, MandateSBC, MandateMBRS}

// SubmissionTypes returns the valid submission types for a mandate. An
// empty slice means the mandate takes no submission type.
func SubmissionTypes(m Mandate) []string {
	if m == MandateMBRS {
		return []string{"FS-MFRS", "FS-MPERS"}
	}
	return nil
}

// Valid reports whether m is a known mandate.
func (m Mandate) Valid() bool {
	switch m {
	case MandateACFR, MandateSBC, MandateMBRS:
		return true
	}
	return false
}

// Status is the processing state of a filing. A record starts Processing
// and flips to Completed exactly once; it never reverts.
type Status string

// Filing statuses.
const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
)

// FilingDetails carries the form metadata captured at upload time.
type FilingDetails struct {
	Mandate        Mandate `json:"mandate"`
	SubmissionType string  `json:"typeOfSubmission,omitempty"`
	CompanyName    string  `json:"companyName"`
	Description    string  `json:"description,omitempty"`
}

// Validate checks the mandate-dependent field rules.
func (d FilingDetails) Validate() error {
	if !d.Mandate.Valid() {
		return fmt.Errorf("invalid mandate %q", d.Mandate)
	}
	if d.CompanyName == "" {
		return fmt.Errorf("company name is required")
	}
	types := SubmissionTypes(d.Mandate)
	if len(types) == 0 {
		if d.SubmissionType != "" {
			return fmt.Errorf("mandate %s does not take a submission type", d.Mandate)
		}
		return nil
	}
	if d.SubmissionType == "" {
		return fmt.Errorf("mandate %s requires a submission type", d.Mandate)
	}
	for _, t := range types {
		if d.SubmissionType == t {
			return nil
		}
	}
	return fmt.Errorf("invalid submission type %q for mandate %s", d.SubmissionType, d.Mandate)
}

// FilingRecord is one submitted filing. Records are created on upload,
// mutated once by the status scheduler, and only ever removed by a bulk
// clear of the owner's partition.
type FilingRecord struct {
	CreatedAt  time.Time     `json:"date"`
	ID         string        `json:"id"`
	Filename   string        `json:"filename"`
	Status     Status        `json:"status"`
	Content    string        `json:"fileContent,omitempty"`
	OwnerEmail string        `json:"userEmail"`
	Details    FilingDetails `json:"details"`
	Shares     []ShareEntry  `json:"shares,omitempty"`
}

// NewRecordID derives a record identifier from the creation time, matching
// the millisecond-precision decimal form the request id derivation expects.
func NewRecordID(createdAt time.Time) string {
	return strconv.FormatInt(createdAt.UnixMilli(), 10)
}

// RequestID derives the 6-digit display identifier: id mod 1_000_000,
// left-zero-padded. It is stable for a given record id and used only for
// display and search, never as a real key.
func RequestID(id string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n < 0 {
		return "000000"
	}
	return fmt.Sprintf("%06d", n%1_000_000)
}

// RequestID returns the record's derived display identifier.
func (r FilingRecord) RequestID() string {
	return RequestID(r.ID)
}
