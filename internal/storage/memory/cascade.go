package memory

import (
	"fmt"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// moneyScale is the number of fractional digits kept by NUMERIC(19,4).
const moneyScale = 4

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

func uniqueViolation(index string) error {
	return fmt.Errorf("%w: %s", sqlconfig.ErrUniqueViolation, index)
}

func foreignKeyViolation(column string) error {
	return fmt.Errorf("%w: %s", sqlconfig.ErrForeignKeyViolation, column)
}

func (d *dataset) requireUser(id uuid.UUID, column string) error {
	if _, ok := d.users[id]; !ok {
		return foreignKeyViolation(column)
	}
	return nil
}

func (d *dataset) requireAccount(id uuid.UUID, column string) error {
	if _, ok := d.accounts[id]; !ok {
		return foreignKeyViolation(column)
	}
	return nil
}

func (d *dataset) requireCategory(id null.Val[uuid.UUID], column string) error {
	v, ok := id.Get()
	if !ok {
		return nil
	}
	if _, ok := d.categories[v]; !ok {
		return foreignKeyViolation(column)
	}
	return nil
}

func (d *dataset) deleteUser(id uuid.UUID) {
	for accountID, a := range d.accounts {
		if a.UserID == id {
			d.deleteAccount(accountID)
		}
	}
	for budgetID, b := range d.budgets {
		if b.UserID == id {
			delete(d.budgets, budgetID)
		}
	}
	for goalID, g := range d.goals {
		if g.UserID == id {
			delete(d.goals, goalID)
		}
	}
	delete(d.users, id)
}

func (d *dataset) deleteAccount(id uuid.UUID) {
	for categoryID, c := range d.categories {
		if c.AccountID == id {
			d.deleteCategory(categoryID)
		}
	}
	for txID, t := range d.transactions {
		if t.AccountID == id {
			delete(d.transactions, txID)
		}
	}
	for rtID, rt := range d.recurringTransactions {
		if rt.AccountID == id {
			delete(d.recurringTransactions, rtID)
		}
	}
	delete(d.accounts, id)
}

// deleteCategory removes the category and its budgets. Transactions keep
// existing with their category cleared.
func (d *dataset) deleteCategory(id uuid.UUID) {
	for budgetID, b := range d.budgets {
		if b.CategoryID == id {
			delete(d.budgets, budgetID)
		}
	}
	for txID, t := range d.transactions {
		if v, ok := t.CategoryID.Get(); ok && v == id {
			t.CategoryID = null.Val[uuid.UUID]{}
			d.transactions[txID] = t
		}
	}
	for rtID, rt := range d.recurringTransactions {
		if v, ok := rt.CategoryID.Get(); ok && v == id {
			rt.CategoryID = null.Val[uuid.UUID]{}
			d.recurringTransactions[rtID] = rt
		}
	}
	delete(d.categories, id)
}

// patchNull applies a clearable patch field: unset leaves dst alone, null clears it.
func patchNull[T any](dst *null.Val[T], patch omitnull.Val[T]) {
	if patch.IsUnset() {
		return
	}
	*dst = null.Val[T]{}
	if v, ok := patch.Get(); ok {
		*dst = null.From(v)
	}
}
