package memory

import (
	"context"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type recurringTransactionsTable struct {
	s *session
}

var _ sqlconfig.IRecurringTransactionTable = (*recurringTransactionsTable)(nil)

func (t *recurringTransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.RecurringTransaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.recurringTransactions, id)
		return err
	})
	return out, err
}

func (t *recurringTransactionsTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *sqlconfig.ListFilter) (out []*sqlconfig.RecurringTransaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.recurringTransactions, func(rt *sqlconfig.RecurringTransaction) bool {
			return rt.AccountID == accountID
		}, func(a, b *sqlconfig.RecurringTransaction) int {
			if c := a.StartDate.Compare(b.StartDate); c != 0 {
				return c
			}
			return compareIDs(a.ID, b.ID)
		}, filter)
		return nil
	})
	return out, err
}

func (t *recurringTransactionsTable) Insert(ctx context.Context, create *sqlconfig.RecurringTransactionCreate) (out *sqlconfig.RecurringTransaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireAccount(create.AccountID, "recurring_transactions.account_id"); err != nil {
			return err
		}
		if err := d.requireCategory(create.CategoryID, "recurring_transactions.category_id"); err != nil {
			return err
		}
		rt := sqlconfig.RecurringTransaction{
			ID:          newID(),
			AccountID:   create.AccountID,
			CategoryID:  create.CategoryID,
			Amount:      money(create.Amount),
			Type:        create.Type,
			Description: create.Description,
			StartDate:   create.StartDate.UTC(),
			EndDate:     create.EndDate,
			Frequency:   create.Frequency,
			CreatedAt:   now(),
		}
		d.recurringTransactions[rt.ID] = rt
		out = &rt
		return nil
	})
	return out, err
}

func (t *recurringTransactionsTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.RecurringTransactionPatch) (out *sqlconfig.RecurringTransaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		rt, ok := d.recurringTransactions[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if !patch.CategoryID.IsUnset() {
			categoryID := null.Val[uuid.UUID]{}
			if v, ok := patch.CategoryID.Get(); ok {
				categoryID = null.From(v)
			}
			if err := d.requireCategory(categoryID, "recurring_transactions.category_id"); err != nil {
				return err
			}
			rt.CategoryID = categoryID
		}
		if v, ok := patch.Amount.Get(); ok {
			rt.Amount = money(v)
		}
		if v, ok := patch.Type.Get(); ok {
			rt.Type = v
		}
		patchNull(&rt.Description, patch.Description)
		if v, ok := patch.StartDate.Get(); ok {
			rt.StartDate = v.UTC()
		}
		patchNull(&rt.EndDate, patch.EndDate)
		if v, ok := patch.Frequency.Get(); ok {
			rt.Frequency = v
		}
		patchNull(&rt.LastRun, patch.LastRun)
		d.recurringTransactions[id] = rt
		out = &rt
		return nil
	})
	return out, err
}

func (t *recurringTransactionsTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.RecurringTransaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.recurringTransactions, id)
		if err != nil {
			return err
		}
		delete(d.recurringTransactions, id)
		return nil
	})
	return out, err
}
