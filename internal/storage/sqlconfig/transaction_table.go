package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

// Transaction represents a transaction record. Amount is always positive; Type carries the sign.
type Transaction struct {
	ID          uuid.UUID           `db:"id"`
	AccountID   uuid.UUID           `db:"account_id"`
	CategoryID  null.Val[uuid.UUID] `db:"category_id"`
	Amount      decimal.Decimal     `db:"amount"`
	Type        TransactionType     `db:"transaction_type"`
	Description null.Val[string]    `db:"description"`
	Date        time.Time           `db:"transaction_date"`
	CreatedAt   time.Time           `db:"created_at"`
}

// SignedAmount is the delta this transaction applies to its account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.Type, t.Amount)
}

// SignedAmount returns amount for income and -amount for expense.
func SignedAmount(transactionType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if transactionType == TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID   uuid.UUID
	CategoryID  null.Val[uuid.UUID]
	Amount      decimal.Decimal
	Type        TransactionType
	Description null.Val[string]
	Date        time.Time // defaults to now if zero
}

// TransactionPatch lists the amendable transaction columns.
type TransactionPatch struct {
	CategoryID  omitnull.Val[uuid.UUID]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[TransactionType]
	Description omitnull.Val[string]
	Date        omit.Val[time.Time]
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// ListByParent returns the account's transactions, most recent date first.
	ListByParent(ctx context.Context, accountID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	// CountByParent returns how many transactions reference the account.
	CountByParent(ctx context.Context, accountID uuid.UUID) (int64, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

var transactionsTable = table{
	name: "transactions",
	columns: []string{
		"id", "account_id", "category_id", "amount", "transaction_type",
		"description", "transaction_date", "created_at",
	},
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return findByID[Transaction](ctx, t.exec, transactionsTable, id, false)
}

func (t *TransactionsTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	var where bob.Expression = whereColumn("account_id", accountID)
	if filter != nil && filter.MaxCreationTime != nil {
		where = psql.And(where, psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime)))
	}

	mods := transactionsTable.selectMods(
		sm.Where(where),
		sm.OrderBy("transaction_date").Desc(),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[Transaction](ctx, t.exec, psql.Select(mods...))
}

func (t *TransactionsTable) CountByParent(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return countWhere(ctx, t.exec, transactionsTable, whereColumn("account_id", accountID))
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	date := create.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	q := psql.Insert(
		im.Into(transactionsTable.name,
			"account_id", "category_id", "amount", "transaction_type", "description", "transaction_date"),
		im.Values(psql.Arg(
			create.AccountID, create.CategoryID, create.Amount, string(create.Type), create.Description, date,
		)),
		im.Returning(transactionsTable.cols()...),
	)
	return queryOne[Transaction](ctx, t.exec, q)
}

func (t *TransactionsTable) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if !patch.CategoryID.IsUnset() {
		sets = append(sets, setCol("category_id", patch.CategoryID))
	}
	if v, ok := patch.Amount.Get(); ok {
		sets = append(sets, setCol("amount", v))
	}
	if v, ok := patch.Type.Get(); ok {
		sets = append(sets, setCol("transaction_type", string(v)))
	}
	if !patch.Description.IsUnset() {
		sets = append(sets, setCol("description", patch.Description))
	}
	if v, ok := patch.Date.Get(); ok {
		sets = append(sets, setCol("transaction_date", v))
	}
	return updateByID[Transaction](ctx, t.exec, transactionsTable, id, sets)
}

func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return deleteByID[Transaction](ctx, t.exec, transactionsTable, id)
}
