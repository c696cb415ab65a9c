package models

import (
	"fmt"
	"time"
)

// EntryType classifies a time entry.
type EntryType string

const (
	EntryTypeRegular  EntryType = "regular"
	EntryTypeOvertime EntryType = "overtime"
)

// ParseEntryType converts user input into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeRegular, EntryTypeOvertime:
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("unknown entry type %q", s)
	}
}

// TimeEntry is one continuous work session of a user.
// An entry with a nil EndTime is open (the session is still running).
type TimeEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Type      EntryType  `json:"type"`
}

// IsOpen reports whether the session has not been stopped yet.
func (e TimeEntry) IsOpen() bool { return e.EndTime == nil }

// Duration returns the length of a closed entry, or zero for an open one.
func (e TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// WholeHours returns the number of complete hours in the entry.
// Partial hours are discarded, not rounded.
func (e TimeEntry) WholeHours() int {
	d := e.Duration()
	if d <= 0 {
		return 0
	}
	return int(d / time.Hour)
}

// ValidInterval reports whether EndTime, when present, is strictly after StartTime.
func (e TimeEntry) ValidInterval() bool {
	return e.EndTime == nil || e.EndTime.After(e.StartTime)
}

// Clone returns a deep copy so callers can never mutate the store's EndTime.
func (e TimeEntry) Clone() TimeEntry {
	if e.EndTime != nil {
		end := *e.EndTime
		e.EndTime = &end
	}
	return e
}

// In returns a copy of e with both timestamps expressed in loc.
func (e TimeEntry) In(loc *time.Location) TimeEntry {
	e = e.Clone()
	e.StartTime = e.StartTime.In(loc)
	if e.EndTime != nil {
		*e.EndTime = e.EndTime.In(loc)
	}
	return e
}

// EntryPatch carries the fields to merge into an existing entry.
// Nil fields are left untouched.
type EntryPatch struct {
	StartTime *time.Time
	EndTime   *time.Time
	Type      *EntryType
}

// Apply returns a copy of e with the non-nil patch fields merged in.
func (p EntryPatch) Apply(e TimeEntry) TimeEntry {
	out := e.Clone()
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		end := *p.EndTime
		out.EndTime = &end
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	return out
}
