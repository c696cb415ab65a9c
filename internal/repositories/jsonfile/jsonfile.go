// Package jsonfile persists the store snapshot as a single JSON document:
//
//	{"users": [...], "timeEntries": [...]}
//
// Timestamps are RFC 3339 strings and open entries carry "endTime": null.
// With a passphrase the document is sealed by cryptox before it is written.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/timekeeper/internal/cryptox"
	"github.com/dmitrijs2005/timekeeper/internal/filex"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

type Persister struct {
	path       string
	passphrase []byte
}

type Option func(*Persister)

// WithPassphrase seals the document on save. Plain documents are still
// readable and get sealed on the next save.
func WithPassphrase(passphrase string) Option {
	return func(p *Persister) {
		if passphrase != "" {
			p.passphrase = []byte(passphrase)
		}
	}
}

func New(path string, opts ...Option) *Persister {
	p := &Persister{path: path}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path is the file the persister reads and writes.
func (p *Persister) Path() string { return p.path }

// Load reads the document. A missing file yields an empty snapshot.
func (p *Persister) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}

	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return models.Snapshot{}, nil
	}
	if data, err = cryptox.Open(data, p.passphrase); err != nil {
		return models.Snapshot{}, fmt.Errorf("open %s: %w", p.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return snap, nil
}

// Save rewrites the whole document atomically.
func (p *Persister) Save(ctx context.Context, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if snapshot.Users == nil {
		snapshot.Users = []models.User{}
	}
	if snapshot.TimeEntries == nil {
		snapshot.TimeEntries = []models.TimeEntry{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if p.passphrase != nil {
		if data, err = cryptox.Seal(data, p.passphrase); err != nil {
			return fmt.Errorf("seal snapshot: %w", err)
		}
	}
	return filex.WriteFileAtomic(p.path, data, 0o600)
}
