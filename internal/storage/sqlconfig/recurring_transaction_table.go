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

// RecurringTransaction represents a recurring_transactions record. LastRun is
// bookkeeping data only; nothing in the service executes schedules.
type RecurringTransaction struct {
	ID          uuid.UUID           `db:"id"`
	AccountID   uuid.UUID           `db:"account_id"`
	CategoryID  null.Val[uuid.UUID] `db:"category_id"`
	Amount      decimal.Decimal     `db:"amount"`
	Type        TransactionType     `db:"transaction_type"`
	Description null.Val[string]    `db:"description"`
	StartDate   time.Time           `db:"start_date"`
	EndDate     null.Val[time.Time] `db:"end_date"`
	Frequency   Frequency           `db:"frequency"`
	LastRun     null.Val[time.Time] `db:"last_run"`
	CreatedAt   time.Time           `db:"created_at"`
}

type RecurringTransactionCreate struct {
	AccountID   uuid.UUID
	CategoryID  null.Val[uuid.UUID]
	Amount      decimal.Decimal
	Type        TransactionType
	Description null.Val[string]
	StartDate   time.Time
	EndDate     null.Val[time.Time]
	Frequency   Frequency
}

type RecurringTransactionPatch struct {
	CategoryID  omitnull.Val[uuid.UUID]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[TransactionType]
	Description omitnull.Val[string]
	StartDate   omit.Val[time.Time]
	EndDate     omitnull.Val[time.Time]
	Frequency   omit.Val[Frequency]
	LastRun     omitnull.Val[time.Time]
}

//go:generate mockery --name IRecurringTransactionTable --output mock_IRecurringTransactionTable.go
type IRecurringTransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error)
	ListByParent(ctx context.Context, accountID uuid.UUID, filter *ListFilter) ([]*RecurringTransaction, error)
	Insert(ctx context.Context, create *RecurringTransactionCreate) (*RecurringTransaction, error)
	Update(ctx context.Context, id uuid.UUID, patch *RecurringTransactionPatch) (*RecurringTransaction, error)
	Delete(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error)
}

var recurringTransactionsTable = table{
	name: "recurring_transactions",
	columns: []string{
		"id", "account_id", "category_id", "amount", "transaction_type", "description",
		"start_date", "end_date", "frequency", "last_run", "created_at",
	},
}

type RecurringTransactionsTable struct {
	exec bob.Executor
}

var _ IRecurringTransactionTable = (*RecurringTransactionsTable)(nil)

func NewRecurringTransactionsTable(exec bob.Executor) *RecurringTransactionsTable {
	return &RecurringTransactionsTable{exec: exec}
}

func (t *RecurringTransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error) {
	return findByID[RecurringTransaction](ctx, t.exec, recurringTransactionsTable, id, false)
}

// ListByParent returns the account's recurring transactions ordered by start date.
func (t *RecurringTransactionsTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *ListFilter) ([]*RecurringTransaction, error) {
	mods := recurringTransactionsTable.selectMods(
		sm.Where(whereColumn("account_id", accountID)),
		sm.OrderBy("start_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[RecurringTransaction](ctx, t.exec, psql.Select(mods...))
}

func (t *RecurringTransactionsTable) Insert(ctx context.Context, create *RecurringTransactionCreate) (*RecurringTransaction, error) {
	q := psql.Insert(
		im.Into(recurringTransactionsTable.name,
			"account_id", "category_id", "amount", "transaction_type", "description",
			"start_date", "end_date", "frequency"),
		im.Values(psql.Arg(
			create.AccountID, create.CategoryID, create.Amount, string(create.Type), create.Description,
			create.StartDate, create.EndDate, string(create.Frequency),
		)),
		im.Returning(recurringTransactionsTable.cols()...),
	)
	return queryOne[RecurringTransaction](ctx, t.exec, q)
}

func (t *RecurringTransactionsTable) Update(ctx context.Context, id uuid.UUID, patch *RecurringTransactionPatch) (*RecurringTransaction, error) {
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
	if v, ok := patch.StartDate.Get(); ok {
		sets = append(sets, setCol("start_date", v))
	}
	if !patch.EndDate.IsUnset() {
		sets = append(sets, setCol("end_date", patch.EndDate))
	}
	if v, ok := patch.Frequency.Get(); ok {
		sets = append(sets, setCol("frequency", string(v)))
	}
	if !patch.LastRun.IsUnset() {
		sets = append(sets, setCol("last_run", patch.LastRun))
	}
	return updateByID[RecurringTransaction](ctx, t.exec, recurringTransactionsTable, id, sets)
}

func (t *RecurringTransactionsTable) Delete(ctx context.Context, id uuid.UUID) (*RecurringTransaction, error) {
	return deleteByID[RecurringTransaction](ctx, t.exec, recurringTransactionsTable, id)
}
