package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

// Category represents a categories record.
type Category struct {
	ID        uuid.UUID `db:"id"`
	AccountID uuid.UUID `db:"account_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type CategoryCreate struct {
	AccountID uuid.UUID
	Name      string
}

type CategoryPatch struct {
	Name omit.Val[string]
}

//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByParent(ctx context.Context, accountID uuid.UUID, filter *ListFilter) ([]*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*Category, error)
}

var categoriesTable = table{
	name:    "categories",
	columns: []string{"id", "account_id", "name", "created_at"},
}

type CategoriesTable struct {
	exec bob.Executor
}

var _ ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

func (t *CategoriesTable) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return findByID[Category](ctx, t.exec, categoriesTable, id, false)
}

func (t *CategoriesTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *ListFilter) ([]*Category, error) {
	mods := categoriesTable.selectMods(
		sm.Where(whereColumn("account_id", accountID)),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		mods = append(mods, limitMods(filter.Limit, filter.Offset)...)
	}
	return queryAll[Category](ctx, t.exec, psql.Select(mods...))
}

func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	q := psql.Insert(
		im.Into(categoriesTable.name, "account_id", "name"),
		im.Values(psql.Arg(create.AccountID, create.Name)),
		im.Returning(categoriesTable.cols()...),
	)
	return queryOne[Category](ctx, t.exec, q)
}

func (t *CategoriesTable) Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (*Category, error) {
	var sets []bob.Mod[*dialect.UpdateQuery]
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, setCol("name", v))
	}
	return updateByID[Category](ctx, t.exec, categoriesTable, id, sets)
}

func (t *CategoriesTable) Delete(ctx context.Context, id uuid.UUID) (*Category, error) {
	return deleteByID[Category](ctx, t.exec, categoriesTable, id)
}
