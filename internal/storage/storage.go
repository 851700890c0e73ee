package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/bookkeeping-server/internal/config"
	"github.com/carson-networks/bookkeeping-server/internal/storage/memory"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Storage exposes every table for reads outside a transaction and opens
// Writers for multi-row changes.
type Storage struct {
	sqlconfig.Tables

	begin func(ctx context.Context) (*Writer, error)
	close func() error
}

// NewStorage opens the backend selected by env.StorageDriver.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.StorageDriver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverPostgres, "":
		db, err := sql.Open("postgres", env.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		return NewPostgresStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", env.StorageDriver)
	}
}

func NewPostgresStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		Tables: sqlconfig.NewTables(bobDB),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := bobDB.BeginTx(ctx, nil)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx, sqlconfig.NewTables(tx)), nil
		},
		close: db.Close,
	}
}

func NewMemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		Tables: store.Tables(),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := store.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(tx, tx.Tables()), nil
		},
		close: func() error { return nil },
	}
}

// Write opens a unit of work. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
