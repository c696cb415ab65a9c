// Package command models user intents ("start working", "stop working") as
// plain values that are applied against the store.
//
// An Action carries everything needed to perform the intent, so the caller
// that triggers it (the CLI) never touches storage directly. Executor adds
// audit logging around Apply.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// Kind tags an Action.
type Kind string

const (
	KindStartSession Kind = "start_session"
	KindStopSession  Kind = "stop_session"
)

// Action is a tagged unit of work.
type Action struct {
	Kind      Kind
	UserID    string
	At        time.Time
	EntryType models.EntryType
}

// StartSession begins tracking time for userID at the given instant.
func StartSession(userID string, at time.Time, t models.EntryType) Action {
	return Action{Kind: KindStartSession, UserID: userID, At: at, EntryType: t}
}

// StopSession closes the active entry of userID at the given instant.
func StopSession(userID string, at time.Time) Action {
	return Action{Kind: KindStopSession, UserID: userID, At: at}
}

// EntryStore is the part of store.Store an Action needs.
type EntryStore interface {
	AddTimeEntry(ctx context.Context, entry models.TimeEntry) error
	UpdateTimeEntry(ctx context.Context, id string, patch models.EntryPatch) error
	ActiveEntry(userID string) (models.TimeEntry, bool)
}

// EntryFactory builds new entries.
type EntryFactory interface {
	Create(userID string, start time.Time, t models.EntryType) models.TimeEntry
}

// Deps are the collaborators Apply works with.
type Deps struct {
	Store   EntryStore
	Factory EntryFactory
}

// Apply performs the action and returns the entry it created or closed.
// Apply returns only after the store mutation and its persistence write.
func (a Action) Apply(ctx context.Context, d Deps) (models.TimeEntry, error) {
	switch a.Kind {
	case KindStartSession:
		return a.start(ctx, d)
	case KindStopSession:
		return a.stop(ctx, d)
	default:
		return models.TimeEntry{}, fmt.Errorf("unknown action kind %q", a.Kind)
	}
}

func (a Action) start(ctx context.Context, d Deps) (models.TimeEntry, error) {
	t := a.EntryType
	if t == "" {
		t = models.EntryTypeRegular
	}
	entry := d.Factory.Create(a.UserID, a.At, t)
	if err := d.Store.AddTimeEntry(ctx, entry); err != nil {
		return entry, fmt.Errorf("start session: %w", err)
	}
	return entry, nil
}

func (a Action) stop(ctx context.Context, d Deps) (models.TimeEntry, error) {
	active, ok := d.Store.ActiveEntry(a.UserID)
	if !ok {
		return models.TimeEntry{}, fmt.Errorf("stop session for user %s: no active entry: %w", a.UserID, common.ErrorNotFound)
	}

	end := a.At
	if err := d.Store.UpdateTimeEntry(ctx, active.ID, models.EntryPatch{EndTime: &end}); err != nil {
		return active, fmt.Errorf("stop session: %w", err)
	}
	active.EndTime = &end
	return active, nil
}
