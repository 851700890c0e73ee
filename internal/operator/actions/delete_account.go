package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
	"github.com/carson-networks/bookkeeping-server/internal/storage"
	"github.com/carson-networks/bookkeeping-server/internal/storage/sqlconfig"
)

// DeleteAccount removes an account that has no transactions. The account
// row stays locked between the count and the delete so no transaction can
// slip in.
type DeleteAccount struct {
	ID uuid.UUID

	Result *sqlconfig.Account
}

func (a *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockAccount(ctx, writer, a.ID); err != nil {
		return err
	}

	count, err := writer.Transactions.CountByParent(ctx, a.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &apperr.DependencyError{
			Entity:    "account",
			ID:        a.ID.String(),
			Dependent: "transactions",
			Count:     count,
		}
	}

	deleted, err := writer.Accounts.Delete(ctx, a.ID)
	if err != nil {
		return notFound(err, "account", a.ID)
	}

	a.Result = deleted
	return nil
}
