// Package memory is a Persister that keeps the last saved snapshot in process
// memory. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/timekeeper/internal/models"
)

type Persister struct {
	mu    sync.Mutex
	snap  models.Snapshot
	saves int
}

func New() *Persister {
	return &Persister{}
}

func (p *Persister) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.Clone(), nil
}

func (p *Persister) Save(ctx context.Context, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snapshot.Clone()
	p.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (p *Persister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
