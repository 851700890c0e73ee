package memory

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type goalsTable struct {
	s *session
}

var _ sqlconfig.IGoalTable = (*goalsTable)(nil)

func (t *goalsTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.goals, id)
		return err
	})
	return out, err
}

func (t *goalsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *sqlconfig.ListFilter) (out []*sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.goals, func(g *sqlconfig.Goal) bool {
			return g.UserID == userID
		}, func(a, b *sqlconfig.Goal) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return compareIDs(a.ID, b.ID)
		}, filter)
		return nil
	})
	return out, err
}

func (t *goalsTable) Insert(ctx context.Context, create *sqlconfig.GoalCreate) (out *sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireUser(create.UserID, "goals.user_id"); err != nil {
			return err
		}
		g := sqlconfig.Goal{
			ID:           newID(),
			UserID:       create.UserID,
			Name:         create.Name,
			TargetAmount: money(create.TargetAmount),
			SavedAmount:  decimal.Zero,
			Deadline:     create.Deadline,
			CreatedAt:    now(),
		}
		d.goals[g.ID] = g
		out = &g
		return nil
	})
	return out, err
}

func (t *goalsTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.GoalPatch) (out *sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		g, ok := d.goals[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if v, ok := patch.Name.Get(); ok {
			g.Name = v
		}
		if v, ok := patch.TargetAmount.Get(); ok {
			g.TargetAmount = money(v)
		}
		if v, ok := patch.SavedAmount.Get(); ok {
			g.SavedAmount = money(v)
		}
		patchNull(&g.Deadline, patch.Deadline)
		d.goals[id] = g
		out = &g
		return nil
	})
	return out, err
}

func (t *goalsTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.goals, id)
		if err != nil {
			return err
		}
		delete(d.goals, id)
		return nil
	})
	return out, err
}

func (t *goalsTable) AddSavedAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (out *sqlconfig.Goal, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		g, ok := d.goals[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		g.SavedAmount = money(g.SavedAmount.Add(delta))
		d.goals[id] = g
		out = &g
		return nil
	})
	return out, err
}
