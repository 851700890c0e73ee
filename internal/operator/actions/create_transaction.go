package actions

import (
	"context"

	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// CreateTransaction inserts a transaction and applies its signed amount to
// the account balance in the same storage transaction.
type CreateTransaction struct {
	Create sqlconfig.TransactionCreate

	Result  *sqlconfig.Transaction
	Account *sqlconfig.Account
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockAccount(ctx, writer, t.Create.AccountID); err != nil {
		return err
	}
	if categoryID, ok := t.Create.CategoryID.Get(); ok {
		if err := checkCategory(ctx, writer, t.Create.AccountID, categoryID); err != nil {
			return err
		}
	}

	row, err := writer.Transactions.Insert(ctx, &t.Create)
	if err != nil {
		return err
	}

	account, err := writer.Accounts.IncrementBalance(ctx, row.AccountID, row.SignedAmount())
	if err != nil {
		return err
	}

	t.Result = row
	t.Account = account
	return nil
}
