package store

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// Persister is the persistence port of the store.
// Load returns an empty snapshot when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
}
