// Package storage contains the key-value stores progress is persisted to
// and the in-memory registries used by the presentation adapters.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/infra/postgres"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// KVStore is a string key-value store.
// SetMany writes all pairs or none of them.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, kv map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}

// Options selects and configures a KVStore implementation.
type Options struct {
	Driver          string
	FilePath        string
	SQLitePath      string
	DatabaseURL     string
	MaxConns        int32
	MaxConnLifetime time.Duration
	Logger          *zap.Logger
}

// Open builds the store selected by opts.Driver. The returned close function
// releases the underlying resources and is never nil.
func Open(ctx context.Context, opts Options) (KVStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), noop, nil

	case DriverFile, "":
		s, err := NewFileStore(opts.FilePath, opts.Logger)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case DriverSQLite:
		s, err := NewSQLiteStore(ctx, opts.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, opts.DatabaseURL, postgres.PoolConfig{
			MaxConns:        opts.MaxConns,
			MaxConnLifetime: opts.MaxConnLifetime,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		s, err := NewPostgresStore(ctx, pool, postgres.NewTransactor(pool))
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, func() error { pool.Close(); return nil }, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
