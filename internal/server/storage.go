package server

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-uidemo/internal/config"
	"github.com/goliatone/go-uidemo/pkg/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStorage opens the backend named by cfg. The closer releases it.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (store.Storage, io.Closer, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return store.NewMemoryStorage(), nopCloser{}, nil
	case config.DriverFile:
		fs, err := store.NewFileStorage(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("server: storage: %w", err)
		}
		return fs, nopCloser{}, nil
	case config.DriverSQLite:
		db, err := store.OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("server: storage: %w", err)
		}
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("server: unknown storage driver %q", cfg.Driver)
	}
}
