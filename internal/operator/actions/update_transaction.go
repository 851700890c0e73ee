package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// UpdateTransaction amends a transaction and moves the account balance by
// the difference between the new and old signed amounts.
type UpdateTransaction struct {
	ID    uuid.UUID
	Patch sqlconfig.TransactionPatch

	Result *sqlconfig.Transaction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, t.ID)
	if err != nil {
		return notFound(err, "transaction", t.ID)
	}
	if _, err = lockAccount(ctx, writer, existing.AccountID); err != nil {
		return err
	}
	// Re-read under the account lock; a concurrent writer may have changed it.
	existing, err = writer.Transactions.FindByID(ctx, t.ID)
	if err != nil {
		return notFound(err, "transaction", t.ID)
	}

	if categoryID, ok := t.Patch.CategoryID.Get(); ok {
		if err = checkCategory(ctx, writer, existing.AccountID, categoryID); err != nil {
			return err
		}
	}

	updated, err := writer.Transactions.Update(ctx, t.ID, &t.Patch)
	if err != nil {
		return notFound(err, "transaction", t.ID)
	}

	delta := updated.SignedAmount().Sub(existing.SignedAmount())
	if !delta.IsZero() {
		if _, err = writer.Accounts.IncrementBalance(ctx, updated.AccountID, delta); err != nil {
			return err
		}
	}

	t.Result = updated
	return nil
}
