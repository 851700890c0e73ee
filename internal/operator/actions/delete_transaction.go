package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// DeleteTransaction removes a transaction and reverses its signed amount on
// the account balance.
type DeleteTransaction struct {
	ID uuid.UUID

	Result *sqlconfig.Transaction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, t.ID)
	if err != nil {
		return notFound(err, "transaction", t.ID)
	}
	if _, err = lockAccount(ctx, writer, existing.AccountID); err != nil {
		return err
	}

	deleted, err := writer.Transactions.Delete(ctx, t.ID)
	if err != nil {
		return notFound(err, "transaction", t.ID)
	}

	if _, err = writer.Accounts.IncrementBalance(ctx, deleted.AccountID, deleted.SignedAmount().Neg()); err != nil {
		return err
	}

	t.Result = deleted
	return nil
}
