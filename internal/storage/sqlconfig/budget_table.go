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
)

// Budget represents a budgets record. The limit column is named amount_limit
// because LIMIT is reserved.
type Budget struct {
	ID         uuid.UUID       `db:"id"`
	UserID     uuid.UUID       `db:"user_id"`
	CategoryID uuid.UUID       `db:"category_id"`
	Month      int             `db:"month"`
	Year       int             `db:"year"`
	Limit      decimal.Decimal `db:"amount_limit"`
	CreatedAt  time.Time       `db:"created_at"`
}

type BudgetCreate struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Limit      decimal.Decimal
}

type BudgetPatch struct {
	Limit omit.Val[decimal.Decimal]
}

//go:generate mockery --name IBudgetTable --output mock_IBudgetTable.go
type IBudgetTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	// FindByPeriod returns the user's budget for a category and month, or ErrRecordNotFound.
	FindByPeriod(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (*Budget, error)
	ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
	Update(ctx context.Context, id uuid.UUID, patch *BudgetPatch) (*Budget, error)
	Delete(ctx context.Context, id uuid.UUID) (*Budget, error)
}

var budgetsTable = table{
	name:    "budgets",
	columns: []string{"id", "user_id", "category_id", "month", "year", "amount_limit", "created_at"},
}

type BudgetsTable struct {
	exec bob.Executor
}

var _ IBudgetTable = (*BudgetsTable)(nil)

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

func (t *BudgetsTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return findByID[Budget](ctx, t.exec, budgetsTable, id, false)
}

func (t *BudgetsTable) FindByPeriod(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (*Budget, error) {
	q := psql.Select(budgetsTable.selectMods(sm.Where(psql.And(
		whereColumn("user_id", userID),
		whereColumn("category_id", categoryID),
		whereColumn("month", month),
		whereColumn("year", year),
	)))...)
	return queryOne[Budget](ctx, t.exec, q)
}

// ListByParent returns the user's budgets, most recent period first.
func (t *BudgetsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Budget, error) {
	mods := budgetsTable.selectMods(
		sm.Where(whereColumn("user_id", userID)),
		sm.OrderBy("year").Desc(),
		sm.OrderBy("month").Desc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[Budget](ctx, t.exec, psql.Select(mods...))
}

func (t *BudgetsTable) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	q := psql.Insert(
		im.Into(budgetsTable.name, "user_id", "category_id", "month", "year", "amount_limit"),
		im.Values(psql.Arg(create.UserID, create.CategoryID, create.Month, create.Year, create.Limit)),
		im.Returning(budgetsTable.cols()...),
	)
	return queryOne[Budget](ctx, t.exec, q)
}

func (t *BudgetsTable) Update(ctx context.Context, id uuid.UUID, patch *BudgetPatch) (*Budget, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if v, ok := patch.Limit.Get(); ok {
		sets = append(sets, setCol("amount_limit", v))
	}
	return updateByID[Budget](ctx, t.exec, budgetsTable, id, sets)
}

func (t *BudgetsTable) Delete(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return deleteByID[Budget](ctx, t.exec, budgetsTable, id)
}
