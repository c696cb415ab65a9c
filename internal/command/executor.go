package command

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// Executor applies actions and writes an audit record for each of them.
type Executor struct {
	deps   Deps
	logger logging.Logger
}

func NewExecutor(store EntryStore, factory EntryFactory, logger logging.Logger) *Executor {
	return &Executor{
		deps:   Deps{Store: store, Factory: factory},
		logger: logger.With("component", "command"),
	}
}

// Execute applies a and logs the outcome.
func (e *Executor) Execute(ctx context.Context, a Action) (models.TimeEntry, error) {
	entry, err := a.Apply(ctx, e.deps)
	if err != nil {
		e.logger.Warn(ctx, "action failed", "kind", string(a.Kind), "user_id", a.UserID, "error", err)
		return entry, err
	}
	e.logger.Info(ctx, "action applied", "kind", string(a.Kind), "user_id", a.UserID, "entry_id", entry.ID)
	return entry, nil
}
