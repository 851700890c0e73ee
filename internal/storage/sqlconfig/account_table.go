package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

// Account represents an account record.
type Account struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account. Balance always starts at zero.
type AccountCreate struct {
	UserID uuid.UUID
	Name   string
}

// AccountPatch lists the account columns that may change. Balance is not one of them.
type AccountPatch struct {
	Name omit.Val[string]
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IAccountTable --output mock_IAccountTable.go
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) (*Account, error)
	// IncrementBalance adds delta to the stored balance in a single statement.
	IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Account, error)
}

var accountsTable = table{
	name:    "accounts",
	columns: []string{"id", "user_id", "name", "balance", "created_at"},
}

// AccountsTable provides access to the accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ IAccountTable = (*AccountsTable)(nil)

// NewAccountsTable creates an AccountsTable on the given executor.
func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return findByID[Account](ctx, t.exec, accountsTable, id, false)
}

func (t *AccountsTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return findByID[Account](ctx, t.exec, accountsTable, id, true)
}

// ListByParent returns the accounts of a user ordered by name. Nil filter returns all.
func (t *AccountsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Account, error) {
	mods := accountsTable.selectMods(
		sm.Where(whereColumn("user_id", userID)),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[Account](ctx, t.exec, psql.Select(mods...))
}

// Insert creates a new account with a zero balance.
func (t *AccountsTable) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(accountsTable.name, "user_id", "name", "balance"),
		im.Values(psql.Arg(create.UserID, create.Name, decimal.Zero)),
		im.Returning(accountsTable.cols()...),
	)
	return queryOne[Account](ctx, t.exec, q)
}

func (t *AccountsTable) Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, setCol("name", v))
	}
	return updateByID[Account](ctx, t.exec, accountsTable, id, sets)
}

func (t *AccountsTable) Delete(ctx context.Context, id uuid.UUID) (*Account, error) {
	return deleteByID[Account](ctx, t.exec, accountsTable, id)
}

// IncrementBalance runs UPDATE accounts SET balance = balance + delta so concurrent
// writers never lose an update.
func (t *AccountsTable) IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Account, error) {
	sets := []bob.Mod[*dialect.UpdateQuery]{
		um.SetCol("balance").To(psql.Raw("balance + ?", delta)),
	}
	return updateByID[Account](ctx, t.exec, accountsTable, id, sets)
}
