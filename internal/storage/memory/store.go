// Package memory keeps every table in process memory. It honours the same
// contracts as the Postgres tables: unique indexes, foreign keys, cascades
// and list ordering.
package memory

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// ErrTxDone is returned when a transaction is used after Commit or Rollback.
var ErrTxDone = errors.New("memory: transaction has already been committed or rolled back")

type dataset struct {
	users                 map[uuid.UUID]sqlconfig.User
	accounts              map[uuid.UUID]sqlconfig.Account
	categories            map[uuid.UUID]sqlconfig.Category
	transactions          map[uuid.UUID]sqlconfig.Transaction
	recurringTransactions map[uuid.UUID]sqlconfig.RecurringTransaction
	budgets               map[uuid.UUID]sqlconfig.Budget
	goals                 map[uuid.UUID]sqlconfig.Goal
}

func newDataset() *dataset {
	return &dataset{
		users:                 map[uuid.UUID]sqlconfig.User{},
		accounts:              map[uuid.UUID]sqlconfig.Account{},
		categories:            map[uuid.UUID]sqlconfig.Category{},
		transactions:          map[uuid.UUID]sqlconfig.Transaction{},
		recurringTransactions: map[uuid.UUID]sqlconfig.RecurringTransaction{},
		budgets:               map[uuid.UUID]sqlconfig.Budget{},
		goals:                 map[uuid.UUID]sqlconfig.Goal{},
	}
}

// clone copies every map. Rows are plain values so a shallow copy is enough.
func (d *dataset) clone() *dataset {
	return &dataset{
		users:                 maps.Clone(d.users),
		accounts:              maps.Clone(d.accounts),
		categories:            maps.Clone(d.categories),
		transactions:          maps.Clone(d.transactions),
		recurringTransactions: maps.Clone(d.recurringTransactions),
		budgets:               maps.Clone(d.budgets),
		goals:                 maps.Clone(d.goals),
	}
}

// Store is the in-memory database. One mutex serialises all access; a
// transaction holds it from Begin until Commit or Rollback.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Tables returns accessors that lock the store for the duration of each call.
func (s *Store) Tables() sqlconfig.Tables {
	return newTables(&session{store: s})
}

// Begin locks the store and returns a transaction whose tables see and
// modify the live data. Rollback restores the data as it was at Begin.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	tx := &Tx{store: s, snapshot: s.data.clone()}
	tx.session = &session{store: s, tx: tx}
	return tx, nil
}

type Tx struct {
	store    *Store
	snapshot *dataset
	session  *session
	done     bool
}

func (tx *Tx) Tables() sqlconfig.Tables {
	return newTables(tx.session)
}

func (tx *Tx) Commit(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.store.mu.Unlock()
	return nil
}

func (tx *Tx) Rollback(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.store.data = tx.snapshot
	tx.store.mu.Unlock()
	return nil
}

// session routes table calls either through the store lock or through an
// open transaction that already holds it.
type session struct {
	store *Store
	tx    *Tx
}

func (s *session) run(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		if s.tx.done {
			return ErrTxDone
		}
		return fn(s.store.data)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.data)
}

func newTables(s *session) sqlconfig.Tables {
	return sqlconfig.Tables{
		Users:                 &usersTable{s},
		Accounts:              &accountsTable{s},
		Categories:            &categoriesTable{s},
		Transactions:          &transactionsTable{s},
		RecurringTransactions: &recurringTransactionsTable{s},
		Budgets:               &budgetsTable{s},
		Goals:                 &goalsTable{s},
	}
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// now matches the microsecond precision of a Postgres timestamptz.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func find[T any](rows map[uuid.UUID]T, id uuid.UUID) (*T, error) {
	row, ok := rows[id]
	if !ok {
		return nil, sqlconfig.ErrRecordNotFound
	}
	return &row, nil
}

// collect returns copies of the rows accepted by keep, sorted by compare and
// windowed by the filter.
func collect[T any](rows map[uuid.UUID]T, keep func(*T) bool, compare func(a, b *T) int, filter *sqlconfig.ListFilter) []*T {
	out := make([]*T, 0)
	for _, row := range rows {
		if keep == nil || keep(&row) {
			out = append(out, &row)
		}
	}
	slices.SortFunc(out, compare)
	if filter == nil {
		return out
	}
	return window(out, filter.Limit, filter.Offset)
}

func window[T any](rows []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(rows) {
			return []*T{}
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
