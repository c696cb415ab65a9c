// Package factory constructs well-formed time entries.
package factory

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/google/uuid"
)

// Factory builds open time entries with fresh identifiers.
// It does not check that the user exists; the store does that on insert.
type Factory struct {
	newID func() string
}

// New returns a Factory that assigns random UUIDs.
func New() *Factory {
	return &Factory{newID: uuid.NewString}
}

// NewWithIDFunc returns a Factory using the given id generator.
func NewWithIDFunc(fn func() string) *Factory {
	return &Factory{newID: fn}
}

// CreateRegularTimeEntry returns an open regular entry starting at start.
func (f *Factory) CreateRegularTimeEntry(userID string, start time.Time) models.TimeEntry {
	return f.create(userID, start, models.EntryTypeRegular)
}

// CreateOvertimeTimeEntry returns an open overtime entry starting at start.
func (f *Factory) CreateOvertimeTimeEntry(userID string, start time.Time) models.TimeEntry {
	return f.create(userID, start, models.EntryTypeOvertime)
}

// Create dispatches on the entry type.
func (f *Factory) Create(userID string, start time.Time, t models.EntryType) models.TimeEntry {
	if t == models.EntryTypeOvertime {
		return f.CreateOvertimeTimeEntry(userID, start)
	}
	return f.CreateRegularTimeEntry(userID, start)
}

func (f *Factory) create(userID string, start time.Time, t models.EntryType) models.TimeEntry {
	return models.TimeEntry{
		ID:        f.newID(),
		UserID:    userID,
		StartTime: start,
		EndTime:   nil,
		Type:      t,
	}
}
