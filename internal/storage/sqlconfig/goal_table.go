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
	"github.com/stephenafamo/bob/dialect/psql/um"
)

// Goal represents a goals record.
type Goal struct {
	ID           uuid.UUID           `db:"id"`
	UserID       uuid.UUID           `db:"user_id"`
	Name         string              `db:"name"`
	TargetAmount decimal.Decimal     `db:"target_amount"`
	SavedAmount  decimal.Decimal     `db:"saved_amount"`
	Deadline     null.Val[time.Time] `db:"deadline"`
	CreatedAt    time.Time           `db:"created_at"`
}

// GoalCreate is the input for creating a goal. Saved amount starts at zero.
type GoalCreate struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     null.Val[time.Time]
}

type GoalPatch struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	SavedAmount  omit.Val[decimal.Decimal]
	Deadline     omitnull.Val[time.Time]
}

//go:generate mockery --name IGoalTable --output mock_IGoalTable.go
type IGoalTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Goal, error)
	Insert(ctx context.Context, create *GoalCreate) (*Goal, error)
	Update(ctx context.Context, id uuid.UUID, patch *GoalPatch) (*Goal, error)
	Delete(ctx context.Context, id uuid.UUID) (*Goal, error)
	// AddSavedAmount adds delta to saved_amount in a single statement.
	AddSavedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Goal, error)
}

var goalsTable = table{
	name:    "goals",
	columns: []string{"id", "user_id", "name", "target_amount", "saved_amount", "deadline", "created_at"},
}

type GoalsTable struct {
	exec bob.Executor
}

var _ IGoalTable = (*GoalsTable)(nil)

func NewGoalsTable(exec bob.Executor) *GoalsTable {
	return &GoalsTable{exec: exec}
}

func (t *GoalsTable) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return findByID[Goal](ctx, t.exec, goalsTable, id, false)
}

func (t *GoalsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*Goal, error) {
	mods := goalsTable.selectMods(
		sm.Where(whereColumn("user_id", userID)),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[Goal](ctx, t.exec, psql.Select(mods...))
}

func (t *GoalsTable) Insert(ctx context.Context, create *GoalCreate) (*Goal, error) {
	q := psql.Insert(
		im.Into(goalsTable.name, "user_id", "name", "target_amount", "saved_amount", "deadline"),
		im.Values(psql.Arg(create.UserID, create.Name, create.TargetAmount, decimal.Zero, create.Deadline)),
		im.Returning(goalsTable.cols()...),
	)
	return queryOne[Goal](ctx, t.exec, q)
}

func (t *GoalsTable) Update(ctx context.Context, id uuid.UUID, patch *GoalPatch) (*Goal, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, setCol("name", v))
	}
	if v, ok := patch.TargetAmount.Get(); ok {
		sets = append(sets, setCol("target_amount", v))
	}
	if v, ok := patch.SavedAmount.Get(); ok {
		sets = append(sets, setCol("saved_amount", v))
	}
	if !patch.Deadline.IsUnset() {
		sets = append(sets, setCol("deadline", patch.Deadline))
	}
	return updateByID[Goal](ctx, t.exec, goalsTable, id, sets)
}

func (t *GoalsTable) Delete(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return deleteByID[Goal](ctx, t.exec, goalsTable, id)
}

func (t *GoalsTable) AddSavedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Goal, error) {
	sets := []bob.Mod[*dialect.UpdateQuery]{
		um.SetCol("saved_amount").To(psql.Raw("saved_amount + ?", delta)),
	}
	return updateByID[Goal](ctx, t.exec, goalsTable, id, sets)
}
