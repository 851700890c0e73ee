package memory

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type budgetsTable struct {
	s *session
}

var _ sqlconfig.IBudgetTable = (*budgetsTable)(nil)

func (t *budgetsTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.budgets, id)
		return err
	})
	return out, err
}

func (t *budgetsTable) FindByPeriod(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (out *sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		for _, b := range d.budgets {
			if b.UserID == userID && b.CategoryID == categoryID && b.Month == month && b.Year == year {
				out = &b
				return nil
			}
		}
		return sqlconfig.ErrRecordNotFound
	})
	return out, err
}

func (t *budgetsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *sqlconfig.ListFilter) (out []*sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.budgets, func(b *sqlconfig.Budget) bool {
			return b.UserID == userID
		}, func(a, b *sqlconfig.Budget) int {
			if a.Year != b.Year {
				return b.Year - a.Year
			}
			if a.Month != b.Month {
				return b.Month - a.Month
			}
			return compareIDs(a.ID, b.ID)
		}, filter)
		return nil
	})
	return out, err
}

func (t *budgetsTable) Insert(ctx context.Context, create *sqlconfig.BudgetCreate) (out *sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireUser(create.UserID, "budgets.user_id"); err != nil {
			return err
		}
		if _, ok := d.categories[create.CategoryID]; !ok {
			return foreignKeyViolation("budgets.category_id")
		}
		for _, b := range d.budgets {
			if b.UserID == create.UserID && b.CategoryID == create.CategoryID &&
				b.Month == create.Month && b.Year == create.Year {
				return uniqueViolation("budgets_period_key")
			}
		}
		b := sqlconfig.Budget{
			ID:         newID(),
			UserID:     create.UserID,
			CategoryID: create.CategoryID,
			Month:      create.Month,
			Year:       create.Year,
			Limit:      money(create.Limit),
			CreatedAt:  now(),
		}
		d.budgets[b.ID] = b
		out = &b
		return nil
	})
	return out, err
}

func (t *budgetsTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.BudgetPatch) (out *sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		b, ok := d.budgets[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if v, ok := patch.Limit.Get(); ok {
			b.Limit = money(v)
		}
		d.budgets[id] = b
		out = &b
		return nil
	})
	return out, err
}

func (t *budgetsTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.Budget, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.budgets, id)
		if err != nil {
			return err
		}
		delete(d.budgets, id)
		return nil
	})
	return out, err
}
