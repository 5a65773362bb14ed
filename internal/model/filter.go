package model

import "time"

// FilterSpec is the transient filter state for a history view. It is
// rebuilt per view session and never persisted.
type FilterSpec struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
	Status      Status
	CompanyName string
}

// Empty reports whether no filter is active.
func (f FilterSpec) Empty() bool {
	return f.Search == "" && f.Status == "" && f.CompanyName == "" &&
		f.DateFrom == nil && f.DateTo == nil
}
