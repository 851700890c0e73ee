package storage

import (
	"context"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// committer is satisfied by bob.Tx and memory.Tx.
type committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables bound to one open transaction.
type Writer struct {
	tx committer
	sqlconfig.Tables
}

func NewWriter(tx committer, tables sqlconfig.Tables) *Writer {
	return &Writer{
		tx:     tx,
		Tables: tables,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
