package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/storage"
)

// Store drivers accepted by OpenContactStore.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// StoreOptions selects and configures the contact message backend.
type StoreOptions struct {
	Driver      string
	Local       *storage.LocalStorage // file driver
	MessagesKey string                // file driver
	DatabaseURL string                // postgres driver
	SQLitePath  string                // sqlite driver
	Clock       Clock
}

// OpenContactStore opens the backend named by opts.Driver. The returned
// close function releases any connection the backend holds.
func OpenContactStore(ctx context.Context, opts StoreOptions) (ContactStore, func(), error) {
	switch opts.Driver {
	case DriverFile, "":
		if opts.Local == nil {
			return nil, nil, fmt.Errorf("file store: no data directory configured")
		}
		return NewFileContactRepository(opts.Local, opts.MessagesKey, opts.Clock), func() {}, nil
	case DriverMemory:
		return NewMemoryContactRepository(opts.Clock), func() {}, nil
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPgContactRepository(pool, opts.Clock), pool.Close, nil
	case DriverSQLite:
		repo, err := OpenSQLiteContactRepository(ctx, opts.SQLitePath, opts.Clock)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
