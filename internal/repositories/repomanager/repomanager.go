// Package repomanager opens the store.Persister selected by configuration.
package repomanager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/config"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/filex"
	"github.com/dmitrijs2005/timekeeper/internal/repositories/jsonfile"
	"github.com/dmitrijs2005/timekeeper/internal/repositories/memory"
	"github.com/dmitrijs2005/timekeeper/internal/repositories/s3store"
	"github.com/dmitrijs2005/timekeeper/internal/repositories/sqldb"
	"github.com/dmitrijs2005/timekeeper/internal/store"
)

// CloseFunc releases resources held by a persister.
type CloseFunc func() error

func noopClose() error { return nil }

// openSQL is a seam for tests that cannot reach a real PostgreSQL.
var openSQL = func(ctx context.Context, dialect dbx.Dialect, dsn string) (store.Persister, CloseFunc, error) {
	p, err := sqldb.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

// Open returns the persister for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (store.Persister, CloseFunc, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), noopClose, nil

	case config.StorageJSON:
		return jsonfile.New(cfg.DataPath, jsonfile.WithPassphrase(cfg.DataPassphrase)), noopClose, nil

	case config.StorageSQLite:
		dsn := cfg.DatabaseDSN
		if dsn == "" {
			if err := filex.EnsureDir(filepath.Dir(cfg.DataPath)); err != nil {
				return nil, nil, err
			}
			dsn = cfg.DataPath
		}
		return openSQL(ctx, dbx.DialectSQLite, dsn)

	case config.StoragePostgres:
		return openSQL(ctx, dbx.DialectPostgres, cfg.DatabaseDSN)

	case config.StorageS3:
		p, err := s3store.Open(ctx, s3store.Options{
			Bucket:       cfg.S3Bucket,
			Key:          cfg.S3Key,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Passphrase:   cfg.DataPassphrase,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, noopClose, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage %q", common.ErrorIncorrectConfig, cfg.Storage)
	}
}
