package memory

import (
	"context"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type transactionsTable struct {
	s *session
}

var _ sqlconfig.ITransactionTable = (*transactionsTable)(nil)

func (t *transactionsTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.Transaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.transactions, id)
		return err
	})
	return out, err
}

func (t *transactionsTable) ListByParent(ctx context.Context, accountID uuid.UUID, filter *sqlconfig.TransactionFilter) (out []*sqlconfig.Transaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.transactions, func(tx *sqlconfig.Transaction) bool {
			if tx.AccountID != accountID {
				return false
			}
			return filter == nil || filter.MaxCreationTime == nil || !tx.CreatedAt.After(*filter.MaxCreationTime)
		}, compareTransactions, nil)
		if filter != nil {
			out = window(out, filter.Limit, filter.Offset)
		}
		return nil
	})
	return out, err
}

func (t *transactionsTable) CountByParent(ctx context.Context, accountID uuid.UUID) (n int64, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		for _, tx := range d.transactions {
			if tx.AccountID == accountID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (t *transactionsTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (out *sqlconfig.Transaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireAccount(create.AccountID, "transactions.account_id"); err != nil {
			return err
		}
		if err := d.requireCategory(create.CategoryID, "transactions.category_id"); err != nil {
			return err
		}
		created := now()
		date := create.Date
		if date.IsZero() {
			date = created
		}
		tx := sqlconfig.Transaction{
			ID:          newID(),
			AccountID:   create.AccountID,
			CategoryID:  create.CategoryID,
			Amount:      money(create.Amount),
			Type:        create.Type,
			Description: create.Description,
			Date:        date.UTC(),
			CreatedAt:   created,
		}
		d.transactions[tx.ID] = tx
		out = &tx
		return nil
	})
	return out, err
}

func (t *transactionsTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.TransactionPatch) (out *sqlconfig.Transaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		tx, ok := d.transactions[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if !patch.CategoryID.IsUnset() {
			categoryID := null.Val[uuid.UUID]{}
			if v, ok := patch.CategoryID.Get(); ok {
				categoryID = null.From(v)
			}
			if err := d.requireCategory(categoryID, "transactions.category_id"); err != nil {
				return err
			}
			tx.CategoryID = categoryID
		}
		if v, ok := patch.Amount.Get(); ok {
			tx.Amount = money(v)
		}
		if v, ok := patch.Type.Get(); ok {
			tx.Type = v
		}
		patchNull(&tx.Description, patch.Description)
		if v, ok := patch.Date.Get(); ok {
			tx.Date = v.UTC()
		}
		d.transactions[id] = tx
		out = &tx
		return nil
	})
	return out, err
}

func (t *transactionsTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.Transaction, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.transactions, id)
		if err != nil {
			return err
		}
		delete(d.transactions, id)
		return nil
	})
	return out, err
}

// compareTransactions orders most recent first: date, then creation time, then id.
func compareTransactions(a, b *sqlconfig.Transaction) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return compareIDs(b.ID, a.ID)
}
