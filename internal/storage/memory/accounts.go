package memory

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

type accountsTable struct {
	s *session
}

var _ sqlconfig.IAccountTable = (*accountsTable)(nil)

func (t *accountsTable) FindByID(ctx context.Context, id uuid.UUID) (out *sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.accounts, id)
		return err
	})
	return out, err
}

// FindByIDForUpdate is FindByID: a transaction already holds the store lock.
func (t *accountsTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sqlconfig.Account, error) {
	return t.FindByID(ctx, id)
}

func (t *accountsTable) ListByParent(ctx context.Context, userID uuid.UUID, filter *sqlconfig.ListFilter) (out []*sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out = collect(d.accounts, func(a *sqlconfig.Account) bool {
			return a.UserID == userID
		}, compareAccounts, filter)
		return nil
	})
	return out, err
}

func (t *accountsTable) Insert(ctx context.Context, create *sqlconfig.AccountCreate) (out *sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		if err := d.requireUser(create.UserID, "accounts.user_id"); err != nil {
			return err
		}
		if accountNameTaken(d, uuid.Nil, create.UserID, create.Name) {
			return uniqueViolation("accounts_user_id_name_key")
		}
		a := sqlconfig.Account{
			ID:        newID(),
			UserID:    create.UserID,
			Name:      create.Name,
			Balance:   decimal.Zero,
			CreatedAt: now(),
		}
		d.accounts[a.ID] = a
		out = &a
		return nil
	})
	return out, err
}

func (t *accountsTable) Update(ctx context.Context, id uuid.UUID, patch *sqlconfig.AccountPatch) (out *sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		if v, ok := patch.Name.Get(); ok {
			if accountNameTaken(d, id, a.UserID, v) {
				return uniqueViolation("accounts_user_id_name_key")
			}
			a.Name = v
		}
		d.accounts[id] = a
		out = &a
		return nil
	})
	return out, err
}

func (t *accountsTable) Delete(ctx context.Context, id uuid.UUID) (out *sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		out, err = find(d.accounts, id)
		if err != nil {
			return err
		}
		d.deleteAccount(id)
		return nil
	})
	return out, err
}

func (t *accountsTable) IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (out *sqlconfig.Account, err error) {
	err = t.s.run(ctx, func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return sqlconfig.ErrRecordNotFound
		}
		a.Balance = money(a.Balance.Add(delta))
		d.accounts[id] = a
		out = &a
		return nil
	})
	return out, err
}

func accountNameTaken(d *dataset, self, userID uuid.UUID, name string) bool {
	for id, a := range d.accounts {
		if id != self && a.UserID == userID && a.Name == name {
			return true
		}
	}
	return false
}

func compareAccounts(a, b *sqlconfig.Account) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}
