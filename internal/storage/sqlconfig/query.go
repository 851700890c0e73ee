package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// table holds the name and column list shared by every query against one relation.
type table struct {
	name    string
	columns []string
}

func (t table) cols() []any {
	out := make([]any, len(t.columns))
	for i, c := range t.columns {
		out[i] = c
	}
	return out
}

func (t table) selectMods(mods ...bob.Mod[*dialect.SelectQuery]) []bob.Mod[*dialect.SelectQuery] {
	return append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(t.cols()...),
		sm.From(t.name),
	}, mods...)
}

func whereID(id uuid.UUID) bob.Expression {
	return psql.Quote("id").EQ(psql.Arg(id))
}

func whereColumn(column string, value any) bob.Expression {
	return psql.Quote(column).EQ(psql.Arg(value))
}

func limitMods(limit, offset int) []bob.Mod[*dialect.SelectQuery] {
	var mods []bob.Mod[*dialect.SelectQuery]
	if limit > 0 {
		mods = append(mods, sm.Limit(limit))
	}
	if offset > 0 {
		mods = append(mods, sm.Offset(offset))
	}
	return mods
}

func queryOne[T any](ctx context.Context, exec bob.Executor, q bob.Query) (*T, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[*T]())
	if err != nil {
		return nil, mapError(err)
	}
	return row, nil
}

func queryAll[T any](ctx context.Context, exec bob.Executor, q bob.Query) ([]*T, error) {
	rows, err := bob.All(ctx, exec, q, scan.StructMapper[*T]())
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

func findByID[T any](ctx context.Context, exec bob.Executor, t table, id uuid.UUID, forUpdate bool) (*T, error) {
	mods := t.selectMods(sm.Where(whereID(id)))
	if forUpdate {
		mods = append(mods, sm.ForUpdate())
	}
	return queryOne[T](ctx, exec, psql.Select(mods...))
}

func countWhere(ctx context.Context, exec bob.Executor, t table, where bob.Expression) (int64, error) {
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(t.name),
		sm.Where(where),
	)
	n, err := bob.One(ctx, exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// updateByID applies sets to one row and returns it. With no sets it re-reads the row.
func updateByID[T any](ctx context.Context, exec bob.Executor, t table, id uuid.UUID, sets []bob.Mod[*dialect.UpdateQuery]) (*T, error) {
	if len(sets) == 0 {
		return findByID[T](ctx, exec, t, id, false)
	}
	mods := append([]bob.Mod[*dialect.UpdateQuery]{um.Table(t.name)}, sets...)
	mods = append(mods,
		um.Where(whereID(id)),
		um.Returning(t.cols()...),
	)
	return queryOne[T](ctx, exec, psql.Update(mods...))
}

func deleteByID[T any](ctx context.Context, exec bob.Executor, t table, id uuid.UUID) (*T, error) {
	q := psql.Delete(
		dm.From(t.name),
		dm.Where(whereID(id)),
		dm.Returning(t.cols()...),
	)
	return queryOne[T](ctx, exec, q)
}

func setCol(column string, value any) bob.Mod[*dialect.UpdateQuery] {
	return um.SetCol(column).ToArg(value)
}
